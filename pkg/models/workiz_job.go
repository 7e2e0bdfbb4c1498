package models

// WorkizJob is a job mirrored from Workiz into all_workiz_jobs
type WorkizJob struct {
	SerialID      string  `json:"serial_id" db:"serial_id"`
	ScheduledDate *Date   `json:"scheduled_date,omitempty" db:"scheduled_date"`
	JobDateTime   *string `json:"job_date_time,omitempty" db:"job_date_time"`
	Status        *string `json:"status,omitempty" db:"status"`
	JobType       *string `json:"job_type,omitempty" db:"job_type"`
	FirstName     *string `json:"first_name,omitempty" db:"first_name"`
	LastName      *string `json:"last_name,omitempty" db:"last_name"`
	Phone         *string `json:"phone,omitempty" db:"phone"`
	SecondPhone   *string `json:"second_phone,omitempty" db:"second_phone"`
	Address       *string `json:"address,omitempty" db:"address"`
}

// ExternalRecord converts the job into a reconciliation record
func (j WorkizJob) ExternalRecord() ExternalRecord {
	payload := map[string]any{
		"serial_id": j.SerialID,
	}
	if j.SecondPhone != nil {
		payload["second_phone"] = *j.SecondPhone
	}
	if j.JobDateTime != nil {
		payload["job_date_time"] = *j.JobDateTime
	}

	return ExternalRecord{
		NaturalKey:    j.SerialID,
		SourceSystem:  SourceSystemWorkiz,
		RawPhone:      deref(j.Phone),
		RawAddress:    deref(j.Address),
		ScheduledDate: j.ScheduledDate,
		FirstName:     deref(j.FirstName),
		LastName:      deref(j.LastName),
		Status:        deref(j.Status),
		JobType:       deref(j.JobType),
		Payload:       payload,
	}
}
