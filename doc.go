// Package main provides the entry point for the pdns-tui application,
// a terminal interface for managing PowerDNS zones and records. It talks
// to one or more PowerDNS servers through their REST API, aggregates
// their zones into a single view, and offers modal forms for creating,
// editing, and deleting zones and record sets.
package main
