package model

// Onboarding gate names, reported by activation in fixed check order.
const (
	GateIntegrations      = "integrations"
	GateServiceTypes      = "service_types"
	GateAvailabilitySlots = "availability_slots"
)

// OnboardingSteps holds the eight derived step facts. Each fact is an
// independent existence check; deleting a resource regresses its step.
type OnboardingSteps struct {
	WorkspaceCreated        bool `json:"workspace_created"`
	IntegrationsConfigured  bool `json:"integrations_configured"`
	ContactFormCreated      bool `json:"contact_form_created"`
	ServiceTypesCreated     bool `json:"service_types_created"`
	PostBookingFormsCreated bool `json:"post_booking_forms_created"`
	InventorySet            bool `json:"inventory_set"`
	StaffInvited            bool `json:"staff_invited"`
	WorkspaceActive         bool `json:"workspace_active"`
}

// Count returns the number of completed steps.
func (s OnboardingSteps) Count() int {
	n := 0
	for _, done := range []bool{
		s.WorkspaceCreated,
		s.IntegrationsConfigured,
		s.ContactFormCreated,
		s.ServiceTypesCreated,
		s.PostBookingFormsCreated,
		s.InventorySet,
		s.StaffInvited,
		s.WorkspaceActive,
	} {
		if done {
			n++
		}
	}
	return n
}

// OnboardingStatus is the derived progress view. CurrentStep and
// ProgressPercentage are UI guidance; only activation enforces gates.
type OnboardingStatus struct {
	Completed          bool            `json:"completed"`
	CurrentStep        int             `json:"current_step"`
	Steps              OnboardingSteps `json:"steps"`
	ProgressPercentage float64         `json:"progress_percentage"`
}

// OnboardingState is the workspace lifecycle state.
type OnboardingState string

const (
	OnboardingNotStarted OnboardingState = "not_started"
	OnboardingInProgress OnboardingState = "in_progress"
	OnboardingActive     OnboardingState = "active"
)
