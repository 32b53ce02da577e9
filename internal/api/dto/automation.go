package dto

type AutomationConfigRequest struct {
	DueNoticeEnabled bool   `json:"dueNoticeEnabled"`
	DueNoticeMessage string `json:"dueNoticeMessage"`

	ReminderEnabled bool   `json:"reminderEnabled"`
	ReminderMessage string `json:"reminderMessage"`

	RemarketingPostDueDateEnabled bool   `json:"remarketingPostDueDateEnabled"`
	RemarketingPostDueDateDays    int    `json:"remarketingPostDueDateDays" binding:"min=0"`
	RemarketingPostDueDateMessage string `json:"remarketingPostDueDateMessage"`

	RemarketingPostRegistrationEnabled bool   `json:"remarketingPostRegistrationEnabled"`
	RemarketingPostRegistrationDays    int    `json:"remarketingPostRegistrationDays" binding:"min=0"`
	RemarketingPostRegistrationMessage string `json:"remarketingPostRegistrationMessage"`
}
