package forms

import (
	"sort"

	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
)

// ChapterList is the reorderable chapter editor backing the ebook form. The
// order field is the sole sequencing key and is kept contiguous 1..N after
// every mutation, including removal. Word counts and reading times are
// carried through untouched.
type ChapterList struct {
	chapters []models.Chapter
}

// NewChapterList copies the given chapters, sequences them by their order
// field, and normalizes the numbering.
func NewChapterList(chapters []models.Chapter) *ChapterList {
	l := &ChapterList{chapters: make([]models.Chapter, len(chapters))}
	copy(l.chapters, chapters)
	sort.SliceStable(l.chapters, func(i, j int) bool {
		return l.chapters[i].Order < l.chapters[j].Order
	})
	l.renumber()
	return l
}

// Append adds a chapter at the end with the next sequential order.
func (l *ChapterList) Append(title, content string) {
	l.chapters = append(l.chapters, models.Chapter{
		Title:   title,
		Content: content,
		Order:   len(l.chapters) + 1,
	})
}

// Move relocates the chapter at position from to position to (0-based) and
// renumbers every chapter to its new 1-based index.
func (l *ChapterList) Move(from, to int) error {
	if from < 0 || from >= len(l.chapters) || to < 0 || to >= len(l.chapters) {
		return errors.Errorf("chapter position out of range: %d -> %d", from, to)
	}
	if from == to {
		return nil
	}

	ch := l.chapters[from]
	rest := append(l.chapters[:from], l.chapters[from+1:]...)
	l.chapters = append(rest[:to], append([]models.Chapter{ch}, rest[to:]...)...)
	l.renumber()
	return nil
}

// Remove deletes the chapter at position i (0-based) and closes the numbering
// gap it leaves behind.
func (l *ChapterList) Remove(i int) error {
	if i < 0 || i >= len(l.chapters) {
		return errors.Errorf("chapter position out of range: %d", i)
	}
	l.chapters = append(l.chapters[:i], l.chapters[i+1:]...)
	l.renumber()
	return nil
}

// Len returns the number of chapters.
func (l *ChapterList) Len() int {
	return len(l.chapters)
}

// Chapters returns a copy of the current sequence.
func (l *ChapterList) Chapters() []models.Chapter {
	out := make([]models.Chapter, len(l.chapters))
	copy(out, l.chapters)
	return out
}

func (l *ChapterList) renumber() {
	for i := range l.chapters {
		l.chapters[i].Order = i + 1
	}
}
