package dataset

// Join left-joins stat rows onto boundary records by normalized key. Every
// boundary record appears in the output; boundaries with no matching stat
// row keep a nil Stat. Duplicate keys are not repaired: a key matching
// several stat rows fans the boundary out into one record per match, and a
// duplicated boundary key repeats the stat payload.
//
// The state field is taken from the boundary side when the boundary file
// carries one (it is the driving side), otherwise backfilled from the stat
// table for the whole set at once.
func Join(boundaries *BoundaryTable, stats *StatTable) *JoinedSet {
	index := make(map[string][]*StatRecord, len(stats.Records))
	for i := range stats.Records {
		rec := &stats.Records[i]
		index[rec.Key] = append(index[rec.Key], rec)
	}

	out := &JoinedSet{
		Columns:  stats.Columns,
		HasState: boundaries.HasState || stats.HasState,
	}

	for i := range boundaries.Records {
		b := &boundaries.Records[i]
		matches := index[b.Key]
		if len(matches) == 0 {
			out.Records = append(out.Records, joined(b, nil, boundaries.HasState))
			continue
		}
		for _, m := range matches {
			out.Records = append(out.Records, joined(b, m, boundaries.HasState))
		}
	}

	return out
}

func joined(b *BoundaryRecord, stat *StatRecord, boundaryHasState bool) JoinedRecord {
	rec := JoinedRecord{
		District: b.District,
		Geometry: b.Geometry,
		Stat:     stat,
		Key:      b.Key,
	}
	if boundaryHasState {
		rec.State = b.State
	} else if stat != nil {
		rec.State = stat.State
	}
	return rec
}
