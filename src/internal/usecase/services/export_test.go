package services

import "time"

func SetSubmissionClock(s *SubmissionService, now func() time.Time) { s.now = now }

func SetAdminClock(s *AdminService, now func() time.Time) { s.now = now }
