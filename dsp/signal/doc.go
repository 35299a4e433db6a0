// Package signal generates deterministic float32 test and source signals
// for driving effect chains.
package signal
