package models

import "time"

// SubmissionRequest is the JSON body accepted by POST /api/submissions
type SubmissionRequest struct {
	StudentName    string   `json:"studentName"`
	StudentContact string   `json:"studentContact"`
	Courses        []string `json:"courses"`
}

// SubmissionSummary is what gets announced to the webhook
type SubmissionSummary struct {
	ID             string    `json:"id"`
	StudentName    string    `json:"studentName"`
	StudentContact string    `json:"studentContact"`
	CourseIDs      []string  `json:"courseIds"`
	CourseNames    []string  `json:"courseNames"`
	TotalPrice     int       `json:"totalPrice"`
	TotalLabel     string    `json:"totalLabel"` // e.g. "2,647฿"
	SubmittedAt    time.Time `json:"submittedAt"`
}

// SubmissionRecord is a stored lead
type SubmissionRecord struct {
	ID             string    `json:"id"`
	StudentName    string    `json:"studentName"`
	StudentContact string    `json:"studentContact"`
	CourseIDs      []string  `json:"courseIds"`
	TotalPrice     int       `json:"totalPrice"`
	DriveFileID    string    `json:"driveFileId,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubmissionResponse is returned by the JSON submission endpoint
type SubmissionResponse struct {
	Status       string `json:"status"`
	Stage        string `json:"stage,omitempty"`
	Message      string `json:"message,omitempty"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// ArchivedPoster is a poster stored in the archive folder
type ArchivedPoster struct {
	FileID    string    `json:"fileId"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
