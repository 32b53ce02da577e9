package domain

import "time"

type RuleKind string

const (
	RuleDueNotice                   RuleKind = "due_notice"
	RuleReminder                    RuleKind = "reminder"
	RuleRemarketingPostDueDate      RuleKind = "remarketing_post_due_date"
	RuleRemarketingPostRegistration RuleKind = "remarketing_post_registration"
)

// The reminder rule fires this many days ahead of the due date.
const reminderLeadDays = 3

// Rule is one firing decision for one client: an anchor date, a day
// offset from it, and the watermark of the last successful send. The
// rule is eligible once now reaches anchor+offset (the threshold) and
// stays eligible until the watermark catches up to the threshold.
//
// Comparing the watermark against the threshold rather than against now
// is what makes the loop idempotent under irregular polling: a send sets
// the watermark to the send time, which is >= threshold, so the rule is
// disarmed until the anchor (or offset) changes and produces a new
// threshold past the watermark.
type Rule struct {
	Kind       RuleKind
	Enabled    bool
	Anchor     *time.Time
	OffsetDays int
	Watermark  *time.Time
	Template   string

	// BeforeAnchor restricts firing to now < anchor. Used by the
	// reminder rule, which is pointless once the due date has passed.
	BeforeAnchor bool
}

// Threshold returns anchor+offset, or ok=false when the rule has no
// anchor and therefore does not apply.
func (r Rule) Threshold() (time.Time, bool) {
	if r.Anchor == nil {
		return time.Time{}, false
	}
	return r.Anchor.AddDate(0, 0, r.OffsetDays), true
}

// ShouldFire reports whether the rule is due for a send at the given
// instant. It is pure; callers advance the watermark only after the
// send actually succeeds.
func (r Rule) ShouldFire(now time.Time) bool {
	if !r.Enabled {
		return false
	}
	threshold, ok := r.Threshold()
	if !ok {
		return false
	}
	if now.Before(threshold) {
		return false
	}
	if r.BeforeAnchor && !now.Before(*r.Anchor) {
		return false
	}
	return r.Watermark == nil || r.Watermark.Before(threshold)
}

// RulesFor builds the concrete rule instances for a client under the
// given configuration. Remarketing rules with a non-positive day offset
// are omitted entirely rather than built disabled.
func RulesFor(c *Client, cfg *AutomationConfig) []Rule {
	rules := []Rule{
		{
			Kind:      RuleDueNotice,
			Enabled:   cfg.DueNoticeEnabled,
			Anchor:    c.DueDate,
			Watermark: c.LastNotificationSent,
			Template:  cfg.DueNoticeMessage,
		},
		{
			Kind:         RuleReminder,
			Enabled:      cfg.ReminderEnabled,
			Anchor:       c.DueDate,
			OffsetDays:   -reminderLeadDays,
			Watermark:    c.LastReminderSent,
			Template:     cfg.ReminderMessage,
			BeforeAnchor: true,
		},
	}

	if cfg.RemarketingPostDueDateDays > 0 {
		rules = append(rules, Rule{
			Kind:       RuleRemarketingPostDueDate,
			Enabled:    cfg.RemarketingPostDueDateEnabled,
			Anchor:     c.DueDate,
			OffsetDays: cfg.RemarketingPostDueDateDays,
			Watermark:  c.LastRemarketingPostDueDateSent,
			Template:   cfg.RemarketingPostDueDateMessage,
		})
	}
	if cfg.RemarketingPostRegistrationDays > 0 {
		createdAt := c.CreatedAt
		rules = append(rules, Rule{
			Kind:       RuleRemarketingPostRegistration,
			Enabled:    cfg.RemarketingPostRegistrationEnabled,
			Anchor:     &createdAt,
			OffsetDays: cfg.RemarketingPostRegistrationDays,
			Watermark:  c.LastRemarketingPostRegistrationSent,
			Template:   cfg.RemarketingPostRegistrationMessage,
		})
	}
	return rules
}
