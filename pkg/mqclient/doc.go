// Package mqclient provides the main entry point for creating queue service
// sessions. It normalizes the configured endpoints, selects an authenticator,
// and returns a ready-to-use mqueue.Session.
package mqclient
