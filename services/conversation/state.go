package conversation

// State is the position of a user in the dialog.
type State string

const (
	StateIdle                State = "idle"
	StateAskWeight           State = "ask_weight"
	StateAskHeight           State = "ask_height"
	StateAskGender           State = "ask_gender"
	StateAskBodyFat          State = "ask_bodyfat"
	StateAskDeficitMode      State = "ask_deficit_mode"
	StateConfirmInstructions State = "confirm_instructions"
	StateWeightMenu          State = "weight_menu"
	StateStepsMenu           State = "steps_menu"
	StateInputWeight         State = "input_weight"
	StateInputSteps          State = "input_steps"
	StateInputBurn           State = "input_burn"
	StateChangeDeficitMode   State = "change_deficit_mode"
)

// transitions lists the states a state handler may move to. Commands such as /start reset
// the dialog from anywhere and are not bound by this table.
var transitions = map[State][]State{
	StateIdle:                {StateIdle, StateWeightMenu, StateStepsMenu, StateInputBurn, StateChangeDeficitMode},
	StateAskWeight:           {StateAskWeight, StateAskHeight},
	StateAskHeight:           {StateAskHeight, StateAskGender},
	StateAskGender:           {StateAskGender, StateAskBodyFat},
	StateAskBodyFat:          {StateAskBodyFat, StateAskDeficitMode},
	StateAskDeficitMode:      {StateAskDeficitMode, StateConfirmInstructions},
	StateConfirmInstructions: {StateConfirmInstructions, StateIdle},
	StateWeightMenu:          {StateWeightMenu, StateInputWeight, StateIdle},
	StateStepsMenu:           {StateStepsMenu, StateInputSteps, StateIdle},
	StateInputWeight:         {StateInputWeight, StateIdle},
	StateInputSteps:          {StateInputSteps, StateIdle},
	StateInputBurn:           {StateInputBurn, StateIdle},
	StateChangeDeficitMode:   {StateChangeDeficitMode, StateIdle},
}

// CanTransition reports whether the transition table allows moving from one state to another.
func CanTransition(from, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsOnboarding reports whether the state belongs to the profile questionnaire.
func (s State) IsOnboarding() bool {
	switch s {
	case StateAskWeight, StateAskHeight, StateAskGender, StateAskBodyFat, StateAskDeficitMode, StateConfirmInstructions:
		return true
	}
	return false
}

func parseState(raw string) State {
	state := State(raw)
	if _, ok := transitions[state]; !ok {
		return StateIdle
	}
	return state
}
