package namegen

// SetStats is a point-in-time summary of a NameSet: the size and shape of
// its training data and model, and how full its history is.
type SetStats struct {
	TrainingNames int     `json:"training_names"` // total names, duplicates included
	UniqueNames   int     `json:"unique_names"`   // distinct names
	Order         int     `json:"order"`
	Contexts      int     `json:"contexts"` // distinct context keys in the model
	MeanLength    float64 `json:"mean_length"`
	HistorySize   int     `json:"history_size"`
}

// Stats returns a snapshot of the set. The history size counts the linked
// history, so linked sets report the same value.
func (ns *NameSet) Stats() SetStats {
	return SetStats{
		TrainingNames: len(ns.names),
		UniqueNames:   len(ns.counts),
		Order:         ns.order,
		Contexts:      ns.model.Contexts(),
		MeanLength:    ns.MeanLength(),
		HistorySize:   ns.history.size(),
	}
}
