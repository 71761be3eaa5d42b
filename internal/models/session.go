package models

// Session is the canonical record shape that every producer and consumer
// of session data agrees on. All fields are always present in JSON, with
// type-appropriate empty defaults, so consumers never branch on key
// absence. ID is nil only for records that have not been persisted yet.
type Session struct {
	ID                *int64   `json:"id"`
	Date              string   `json:"date"` // display form, M/D/YYYY
	ISODate           string   `json:"isoDate"`
	Title             string   `json:"title"`
	Length            int      `json:"length"` // minutes, never negative
	SType             string   `json:"stype"`
	EventType         string   `json:"eventType"`
	CEUWeight         string   `json:"ceuWeight"`
	CEUConsiderations string   `json:"ceuConsiderations"`
	QualifyForCEUs    string   `json:"qualifyForCeus"` // exactly "Yes" or "No"
	Presenters        string   `json:"presenters"`
	Members           []Member `json:"members"`
}

// Member is one name/email pair attached to a session. Members are
// read-only through the REST surface.
type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WriteRequest is a client-submitted create/update body, exactly as
// decoded from JSON. It has not been sanitized or validated.
type WriteRequest struct {
	Date              string `json:"date"`
	Title             string `json:"title"`
	Length            int    `json:"length"`
	SType             string `json:"stype"`
	CEUWeight         string `json:"ceuWeight"`
	CEUConsiderations string `json:"ceuConsiderations"`
	QualifyForCEUs    string `json:"qualifyForCeus"`
	EventType         string `json:"eventType"`
	Presenters        string `json:"presenters"`
}

// WritePayload is the canonical write shape produced by payload
// validation: date is strict ISO, length is non-negative, qualify is
// exactly Yes/No and every text field has been sanitized.
type WritePayload struct {
	Date              string
	Title             string
	Length            int
	SType             string
	CEUWeight         string
	CEUConsiderations string
	QualifyForCEUs    string
	EventType         string
	Presenters        string
}
