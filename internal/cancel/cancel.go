// Package cancel provides the cancellation signal observed by long-running
// loops.
//
// A loop checks Done() at the top of every iteration and sleeps through
// Sleep(), or selects on Context().Done(), so that every suspension point
// observes the signal.
package cancel
