// Package cli defines the cobra commands of the loogi-http binary.
package cli
