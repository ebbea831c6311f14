package constants

type RoleEnum string

const (
	RoleAdmin       RoleEnum = "admin"
	RoleGroupOwner  RoleEnum = "group_owner"
	RoleContributor RoleEnum = "contributor"
	RoleReader      RoleEnum = "reader"
)
