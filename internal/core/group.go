package core

import "time"

// dayLabelLayout renders a calendar day as "January 02, 2006". English
// month names, fixed regardless of the display currency's locale.
const dayLabelLayout = "January 02, 2006"

// DayGroup is one calendar day's worth of transactions.
type DayGroup struct {
	Label        string
	Transactions []Transaction
}

// GroupByDay partitions an already date-descending sequence into ordered
// calendar-day groups. Group order follows first occurrence of each day
// in the input; within-group order is preserved. Two records on the same
// day but different times share a group.
func GroupByDay(txs []Transaction) []DayGroup {
	var groups []DayGroup
	index := map[string]int{}
	for _, t := range txs {
		label := DayLabel(t.Date)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}
	return groups
}

// DayLabel formats the grouping key for a date.
func DayLabel(t time.Time) string {
	return t.Format(dayLabelLayout)
}
