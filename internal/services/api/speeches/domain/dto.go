// Package domain holds DTOs for speeches http and service contracts
package domain

// ListInput is the query for listing speeches
// repeated speaker_ids and party_ids are OR-ed within a key and AND-ed across keys
type ListInput struct {
	SpeakerIDs  []int64 `query:"speaker_ids" json:"speaker_ids" validate:"max=200,dive,min=1" example:"12"`
	PartyIDs    []int64 `query:"party_ids" json:"party_ids" validate:"max=200,dive,min=1" example:"7"`
	FromTribune *bool   `query:"from_tribune" json:"from_tribune" example:"true"`
	DateFrom    string  `query:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02" example:"2023-01-01"`
	DateTo      string  `query:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02" example:"2023-12-31"`
	Skip        int     `query:"skip" json:"skip" validate:"min=0" example:"0"`
	Limit       int     `query:"limit" json:"limit" validate:"min=1,max=200" example:"20"`
}

// DefaultListInput is the zero query: first page of 20
func DefaultListInput() ListInput { return ListInput{Skip: 0, Limit: 20} }

// Speech is one speech joined to its speaker and party
type Speech struct {
	ID                int64  `json:"speech_id" example:"1024"`
	Content           string `json:"speech_content"`
	Date              string `json:"datestamp" example:"2023-03-15"`
	FromTribune       bool   `json:"from_tribune" example:"true"`
	SpeakerName       string `json:"speaker_name" example:"Иван Петров"`
	PartyAbbreviation string `json:"party_abbreviation" example:"ГЕРБ"`
	PartyName         string `json:"party_name"`
}

// SpeakerOption is a speaker available as a filter value
type SpeakerOption struct {
	ID         int64   `json:"id" example:"12"`
	Name       string  `json:"name" example:"Иван Петров"`
	MiddleName *string `json:"middle_name" example:"Георгиев"`
}

// PartyOption is a party available as a filter value
type PartyOption struct {
	ID   int64  `json:"id" example:"7"`
	Name string `json:"name"`
	Abbr string `json:"abbr" example:"ГЕРБ"`
}

// Filters is the catalog of filter values
type Filters struct {
	Speakers           []SpeakerOption `json:"speakers"`
	Parties            []PartyOption   `json:"parties"`
	FromTribuneOptions []bool          `json:"from_tribune_options"`
	Dates              []string        `json:"dates"`
}
