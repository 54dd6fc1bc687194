// Package device provides the device manager collaborator for profile stores.
//
// The Manager holds the device config snapshot, answers remap requests from
// subscribed profile stores, and persists the merged result through a
// Backend. It does not speak any device wire protocol: the snapshot lives in
// memory or in a JSON file that can be watched for external changes.
package device
