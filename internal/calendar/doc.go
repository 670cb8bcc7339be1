// Package calendar provides a client for interacting with the Google Calendar API.
//
// This package offers functionality for managing calendars and calendar events,
// including resolving calendars by name, listing events across calendars,
// creating, updating, and deleting events, and managing recurring series.
//
// The Resolver maps human-friendly calendar names to calendar ids, the
// Aggregator fans a single event query out over several calendars, and the
// SeriesManager implements occurrence-level operations on recurring events,
// including the "edit this and all following occurrences" split.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx, httpClient)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resolver := calendar.NewResolver(client)
//	resolved, err := resolver.Resolve(ctx, "Work")
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
