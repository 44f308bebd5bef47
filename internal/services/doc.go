// Package services contains the business logic layer: the pipeline
// orchestrator run by the batch binary and the read-only data service
// behind the results API.
package services
