package conversation

import (
	"context"
	"time"
	"unicode/utf8"
)

// Units splits text into reveal units, one per rune. Invalid UTF-8 bytes
// become their own units so that joining the units gives back text exactly.
func Units(text string) []string {
	units := make([]string, 0, utf8.RuneCountInString(text))
	start := -1
	for i := range text {
		if start >= 0 {
			units = append(units, text[start:i])
		}
		start = i
	}
	if start >= 0 {
		units = append(units, text[start:])
	}
	return units
}

// Reveal calls emit with each unit of text, pausing delay between units.
// It returns early with ctx.Err() when ctx is done.
func Reveal(ctx context.Context, text string, delay time.Duration, emit func(unit string)) error {
	for _, u := range Units(text) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		emit(u)
	}
	return nil
}
