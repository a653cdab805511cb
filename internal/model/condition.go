package model

// ApplyCondition returns the item after a condition change. Moving away from
// "new" drops the chosen images so the operator has to photograph the actual
// unit, unless the item came from the generic/manual fallback where there was
// never stock photography to replace. Moving back to "new" restores the
// resolver-provided stock set.
func ApplyCondition(item ScannedItem, next Condition) ScannedItem {
	if next == item.Condition {
		return item
	}
	prev := item.Condition
	item.Condition = next

	if next != ConditionNew && prev == ConditionNew {
		if item.Provenance != ProvenanceFallback && item.Provenance != ProvenanceManual {
			item.Images = nil
		}
		return item
	}
	if next == ConditionNew && len(item.StockImages) > 0 {
		item.Images = append([]string(nil), item.StockImages...)
	}
	return item
}
