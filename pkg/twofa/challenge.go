package twofa

import "fmt"

// TwoFactorCodeHeader is the request header a caller resends a received
// verification code in.
const TwoFactorCodeHeader = "X-2FA-Code"

// Challenge is the instruction payload returned when a verification round
// has been opened. Its shape is identical across strategies so a caller's
// next step does not depend on which mechanism is active.
type Challenge struct {
	Message string `json:"msg"`
	Hint    string `json:"hint"`
	Header  string `json:"header"`
}

func newChallenge(channel string) Challenge {
	return Challenge{
		Message: fmt.Sprintf("Check your %s for code", channel),
		Hint:    fmt.Sprintf("Put the received code into the %s header and send the request again.", TwoFactorCodeHeader),
		Header:  TwoFactorCodeHeader,
	}
}

// ChallengeRequiredError rejects a protected operation because a challenge
// has just been issued; the embedded Challenge tells the caller how to
// answer it.
type ChallengeRequiredError struct {
	Challenge Challenge
}

func (e *ChallengeRequiredError) Error() string {
	return "two-factor verification required"
}
