package domain

// ReportRow is one row of a /relatorios/* report. Report columns are defined
// by the backend and vary per report, so rows stay loosely typed.
type ReportRow map[string]any
