package domain

// AutomationConfig holds the owner's rule toggles, message templates and
// remarketing day offsets. At most one config exists; it is read-only to
// the polling loops.
type AutomationConfig struct {
	ID string `json:"id"`

	DueNoticeEnabled bool   `json:"dueNoticeEnabled"`
	DueNoticeMessage string `json:"dueNoticeMessage"`

	ReminderEnabled bool   `json:"reminderEnabled"`
	ReminderMessage string `json:"reminderMessage"`

	RemarketingPostDueDateEnabled bool   `json:"remarketingPostDueDateEnabled"`
	RemarketingPostDueDateDays    int    `json:"remarketingPostDueDateDays"`
	RemarketingPostDueDateMessage string `json:"remarketingPostDueDateMessage"`

	RemarketingPostRegistrationEnabled bool   `json:"remarketingPostRegistrationEnabled"`
	RemarketingPostRegistrationDays    int    `json:"remarketingPostRegistrationDays"`
	RemarketingPostRegistrationMessage string `json:"remarketingPostRegistrationMessage"`
}
