// Package models contains GORM persistence models for the hub's tables.
// Domain entities stay free of GORM tags; each model has a FromDomain
// constructor and a ToDomain mapper.
//
// Structure:
// - base.go: BaseModel shared by entity tables
// - membership.go: profiles, alliances
// - recruitment.go: migration_applications
// - stateinfo.go: state_info, state_info_proposals, state_info_votes
// - warplan.go: war_plans, war_roster_players, war_plan_assignments
// - inbox.go: contact_messages
// - creative.go: ai_generated_images, rate_limits
package models
