// Package game implements the Wolf Goat Pig rules engine: captain rotation
// and phase detection, team formation (partners, solo, aardvark variants),
// the escalating wager with its offer/accept/decline protocol and unilateral
// announcements (float, duncan, option, Joe's Special), half-stroke handicap
// allocation, and the zero-sum hole ledger that standings are folded from.
//
// The engine is single-threaded and event-driven: exactly one logical actor
// drives state per round, and every action goes through Engine.Dispatch and
// returns a full state snapshot. Persistence and achievement checks are
// collaborators behind interfaces; their failures surface as warnings on the
// snapshot and never roll back engine state.
package game
