package bot

import "sync"

// Safety violation thresholds. Crossing either blocks the chat for the
// lifetime of the process.
const (
	consecutiveViolationLimit = 3
	totalViolationLimit       = 5
)

// surveyState tracks where a chat is in the feedback survey.
type surveyState int

const (
	surveyIdle surveyState = iota
	surveyRating
	surveyUsage
	surveyProfile
	surveyElaborate
	surveyComment
)

// creativeGate is the outcome of trying to start an analysis for a chat.
type creativeGate int

const (
	gateOpen creativeGate = iota
	gateBusy
	gateNotArmed
	gateBlocked
)

// session is the per-chat conversation state. Updates are handled
// concurrently, so every transition goes through a method holding the
// session mutex. The mutex is never held across a network call.
type session struct {
	mu sync.Mutex

	awaitingCreative bool
	processing       bool
	blocked          bool

	consecutiveViolations int
	totalViolations       int

	survey  surveyState
	rating  int
	usage   string
	profile string
}

// beginAnalysis decides whether a submitted creative may start an
// analysis and, if so, moves the chat into the processing state. A
// submission from a blocked chat still disarms the session.
func (s *session) beginAnalysis() creativeGate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return gateBusy
	}
	if !s.awaitingCreative {
		return gateNotArmed
	}
	s.awaitingCreative = false
	if s.blocked {
		return gateBlocked
	}
	s.processing = true
	return gateOpen
}

func (s *session) endAnalysis() {
	s.mu.Lock()
	s.processing = false
	s.mu.Unlock()
}

// arm opens the session for the next creative.
func (s *session) arm() {
	s.mu.Lock()
	s.awaitingCreative = true
	s.processing = false
	s.mu.Unlock()
}

func (s *session) isBlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// recordViolation counts one safety violation and reports the updated
// counters and whether the chat is now blocked. A successful analysis
// resets the consecutive counter via resetConsecutive, the total only
// ever grows.
func (s *session) recordViolation() (consecutive, total int, blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveViolations++
	s.totalViolations++
	if s.consecutiveViolations >= consecutiveViolationLimit || s.totalViolations >= totalViolationLimit {
		s.blocked = true
	}
	return s.consecutiveViolations, s.totalViolations, s.blocked
}

func (s *session) resetConsecutive() {
	s.mu.Lock()
	s.consecutiveViolations = 0
	s.mu.Unlock()
}

// surveyStage returns where the chat currently is in the feedback survey.
func (s *session) surveyStage() surveyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.survey
}

// startSurvey moves the chat to the rating question and disarms creative
// intake for the duration of the survey.
func (s *session) startSurvey() {
	s.mu.Lock()
	s.awaitingCreative = false
	s.survey = surveyRating
	s.mu.Unlock()
}

// submitRating records the answer to question 1 and advances the survey.
// A stale callback (chat no longer at the rating question) reports false
// and changes nothing; the same applies to the other submit steps.
func (s *session) submitRating(rating int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey != surveyRating {
		return false
	}
	s.rating = rating
	s.survey = surveyUsage
	return true
}

func (s *session) submitUsage(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey != surveyUsage {
		return false
	}
	s.usage = value
	s.survey = surveyProfile
	return true
}

func (s *session) submitProfile(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey != surveyProfile {
		return false
	}
	s.profile = value
	s.survey = surveyElaborate
	return true
}

// beginComment switches the survey to free-text input.
func (s *session) beginComment() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey != surveyElaborate {
		return false
	}
	s.survey = surveyComment
	return true
}

// finishSurveyAt closes the survey if the chat is at the given stage and
// returns the collected answers.
func (s *session) finishSurveyAt(stage surveyState) (rating int, usage, profile string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey != stage {
		return 0, "", "", false
	}
	rating, usage, profile = s.takeAnswers()
	return rating, usage, profile, true
}

// cancelSurvey aborts an in-flight survey and returns whatever answers
// were collected so far. ok is false when no survey was active.
func (s *session) cancelSurvey() (rating int, usage, profile string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.survey == surveyIdle {
		return 0, "", "", false
	}
	rating, usage, profile = s.takeAnswers()
	return rating, usage, profile, true
}

// takeAnswers resets the survey and hands back the answers. Callers hold
// the session mutex.
func (s *session) takeAnswers() (rating int, usage, profile string) {
	rating, usage, profile = s.rating, s.usage, s.profile
	s.survey = surveyIdle
	s.rating, s.usage, s.profile = 0, "", ""
	return rating, usage, profile
}
