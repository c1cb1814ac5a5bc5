// Package prompt asks the wizard's questions. A Driver renders individual
// prompts (the survey-backed driver is the default); Text, Select and Confirm
// add validation and re-ask loops on top, and Group collects several answers
// into one record or none at all.
package prompt
