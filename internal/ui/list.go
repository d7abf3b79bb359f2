package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/scorelib/internal/models"
)

var _ list.Item = scoreItem{}

// scoreItem wraps [models.Score] to implement [list.Item].
type scoreItem struct {
	score models.Score
}

func (i scoreItem) FilterValue() string { return i.score.Title }
func (i scoreItem) Title() string       { return i.score.Title }
func (i scoreItem) Description() string {
	desc := i.score.Composer
	if i.score.Arranger != "" {
		desc = fmt.Sprintf("%s • arr. %s", desc, i.score.Arranger)
	}
	if i.score.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.score.Genre)
	}
	return desc
}
