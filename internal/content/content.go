// Package content is the built-in card catalog: a small set of characters,
// statuses, summons, supports and action cards registered with the engine
// at init time.
package content

func init() {
	registerStatuses()
	registerCharacters()
	registerCards()
}
