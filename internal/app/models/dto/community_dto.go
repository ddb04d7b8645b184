package dto

// RegisterCommunityRequest is the payload for creating a community
type RegisterCommunityRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
	Motto string `json:"motto"`
}

// CommunitySearchResult is one hit of a community search, annotated with the
// caller's relationship to it
type CommunitySearchResult struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Motto   string `json:"motto"`
	Creator string `json:"creator"`
	CanJoin bool   `json:"canJoin"`
}

// DeleteCommunityRequest is the payload for deleting a community
type DeleteCommunityRequest struct {
	Community string `json:"community"`
}

// MemberResponse is one community member entry
type MemberResponse struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// MembersResponse lists a community's leader and its active members
type MembersResponse struct {
	Leader  *MemberResponse  `json:"leader"`
	Members []MemberResponse `json:"members"`
}

// RemoveMemberRequest is the payload for revoking a membership
type RemoveMemberRequest struct {
	Community string `json:"community"`
	Username  string `json:"username"`
}

// UserDetailsResponse carries the caller's profile fields
type UserDetailsResponse struct {
	Name        string `json:"name"`
	PublicEmail string `json:"public_email"`
	Dob         string `json:"dob"`
	Age         string `json:"age"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	Linkedin    string `json:"linkedin"`
	Github      string `json:"github"`
	Twitter     string `json:"twitter"`
	Website     string `json:"website"`
}
