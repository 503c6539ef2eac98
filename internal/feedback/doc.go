// Package feedback delivers human-readable status messages about recorder
// and player transitions.
//
// Producers publish a Message to a Notifier. Observers subscribe to the
// Notifier and render messages to the console, the log or the desktop
// notification area. With WithAsync the Notifier queues messages and
// delivers them from its own goroutine, in publication order, so the input
// listener never waits on terminal output.
package feedback
