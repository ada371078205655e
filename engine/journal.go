package engine

import "slices"

// Journal records the clues and items awarded during a session, in award
// order. Awarding an id twice has no effect.
type Journal struct {
	clues []string
	items []string
}

func NewJournal() *Journal {
	return &Journal{}
}

// AwardClue records a clue and reports whether it was new.
func (j *Journal) AwardClue(id string) bool {
	return award(&j.clues, id)
}

// AwardItem records an item and reports whether it was new.
func (j *Journal) AwardItem(id string) bool {
	return award(&j.items, id)
}

func award(list *[]string, id string) bool {
	if id == "" || slices.Contains(*list, id) {
		return false
	}
	*list = append(*list, id)
	return true
}

func (j *Journal) HasClue(id string) bool { return slices.Contains(j.clues, id) }
func (j *Journal) HasItem(id string) bool { return slices.Contains(j.items, id) }

func (j *Journal) Clues() []string { return slices.Clone(j.clues) }
func (j *Journal) Items() []string { return slices.Clone(j.items) }

func (j *Journal) Reset() {
	j.clues = nil
	j.items = nil
}
