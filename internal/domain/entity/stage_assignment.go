package entity

// StageAssignment grants a user participation rights on a submission at
// whichever stages the user group covers; stage scoping is derived from
// the group's stage memberships, not stored per assignment. RecommendOnly
// assignees may suggest but never finalize a decision.
type StageAssignment struct {
	ID                int64 `json:"id"`
	SubmissionID      int64 `json:"submission_id"`
	UserID            int64 `json:"user_id"`
	UserGroupID       int64 `json:"user_group_id"`
	RecommendOnly     bool  `json:"recommend_only"`
	CanChangeMetadata bool  `json:"can_change_metadata"`
}

// UserGroup is a role group within a context. Its stage memberships live in
// a separate mapping table; PermitMetadataEdit is the default for
// assignments built without an explicit flag.
type UserGroup struct {
	ID                 int64  `json:"id"`
	ContextID          int64  `json:"context_id"`
	RoleID             RoleID `json:"role_id"`
	Name               string `json:"name"`
	PermitMetadataEdit bool   `json:"permit_metadata_edit"`
}
