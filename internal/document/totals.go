package document

// ComputeTotals aggregates the numeric columns of records: currency and
// number columns are summed, percent columns are averaged over the rows that
// carry a value. Other kinds are skipped.
func ComputeTotals(records []Record, columns []ColumnDefinition) Totals {
	totals := make(Totals)
	for _, col := range columns {
		switch col.Kind {
		case KindCurrency, KindNumber, KindPercent:
		default:
			continue
		}
		sum, n := 0.0, 0
		for _, rec := range records {
			if f, ok := rec[col.Key].Float(); ok {
				sum += f
				n++
			}
		}
		if n == 0 {
			continue
		}
		if col.Kind == KindPercent {
			totals[col.Key] = sum / float64(n)
		} else {
			totals[col.Key] = sum
		}
	}
	return totals
}

// GroupMarkers returns a marker before every record whose value in the
// category field differs from the previous record's. Records without a
// category produce no marker.
func GroupMarkers(records []Record, key string) []RowMarker {
	var markers []RowMarker
	prev := ""
	for i, rec := range records {
		v, ok := rec[key]
		if !ok || v.IsNull() {
			continue
		}
		label := plain(v)
		if label == "" || (i > 0 && label == prev) {
			prev = label
			continue
		}
		markers = append(markers, RowMarker{Index: i, Label: label})
		prev = label
	}
	return markers
}
