/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"strconv"
)

// ErrorType represents the suggested reaction to a stanza error.
type ErrorType int

const (
	// Cancel indicates the error cannot be remedied and the request
	// should not be retried.
	Cancel ErrorType = iota + 1

	// Continue indicates the condition was only a warning.
	Continue

	// Modify indicates the request may be retried after changing
	// the data sent.
	Modify

	// Auth indicates the request may be retried after providing
	// credentials.
	Auth

	// Wait indicates the error is temporary and the request may be
	// retried after waiting.
	Wait
)

// String returns ErrorType wire representation.
func (et ErrorType) String() string {
	switch et {
	case Cancel:
		return "cancel"
	case Continue:
		return "continue"
	case Modify:
		return "modify"
	case Auth:
		return "auth"
	case Wait:
		return "wait"
	}
	return ""
}

// ErrorTypeFromString returns the ErrorType associated to a wire
// representation, or 0 when unrecognized.
func ErrorTypeFromString(str string) ErrorType {
	switch str {
	case "cancel":
		return Cancel
	case "continue":
		return Continue
	case "modify":
		return Modify
	case "auth":
		return Auth
	case "wait":
		return Wait
	}
	return 0
}

// ErrorCondition represents a defined stanza error condition.
type ErrorCondition int

const (
	// BadRequest is returned when the sender has sent XML that is
	// malformed or that cannot be processed.
	BadRequest ErrorCondition = iota + 1

	// Conflict is returned when access cannot be granted because an
	// existing resource or session exists with the same name or address.
	Conflict

	// FeatureNotImplemented is returned when the feature requested is not
	// implemented by the recipient or server and therefore cannot be processed.
	FeatureNotImplemented

	// Forbidden is returned when the requesting entity does not possess
	// the required permissions to perform the action.
	Forbidden

	// Gone is returned when the recipient or server can no longer
	// be contacted at this address.
	Gone

	// InternalServerError is returned when the server could not process
	// the stanza because of a misconfiguration or an otherwise-undefined
	// internal server error.
	InternalServerError

	// ItemNotFound is returned when the addressed JID or item requested
	// cannot be found.
	ItemNotFound

	// JidMalformed is returned when the sending entity has provided or
	// communicated an XMPP address that does not adhere to the address
	// syntax rules.
	JidMalformed

	// NotAcceptable is returned when the recipient or server understands
	// the request but is refusing to process it because it does not meet
	// the defined criteria.
	NotAcceptable

	// NotAllowed is returned when the recipient or server does not allow
	// any entity to perform the action.
	NotAllowed

	// NotAuthorized is returned when the sender must provide proper
	// credentials before being allowed to perform the action, or has
	// provided improper credentials.
	NotAuthorized

	// PaymentRequired is returned when the requesting entity is not
	// authorized to access the requested service because payment is required.
	PaymentRequired

	// RecipientUnavailable is returned when the intended recipient
	// is temporarily unavailable.
	RecipientUnavailable

	// Redirect is returned when the recipient or server is redirecting
	// requests for this information to another entity, usually temporarily.
	Redirect

	// RegistrationRequired is returned when the requesting entity is not
	// authorized to access the requested service because registration is required.
	RegistrationRequired

	// RemoteServerNotFound is returned when a remote server or service
	// specified as part or all of the JID of the intended recipient does not exist.
	RemoteServerNotFound

	// RemoteServerTimeout is returned when a remote server or service
	// specified as part or all of the JID of the intended recipient could
	// not be contacted within a reasonable amount of time.
	RemoteServerTimeout

	// ResourceConstraint is returned when the server or recipient lacks
	// the system resources necessary to service the request.
	ResourceConstraint

	// ServiceUnavailable is returned when the server or recipient does
	// not currently provide the requested service.
	ServiceUnavailable

	// SubscriptionRequired is returned when the requesting entity is not
	// authorized to access the requested service because a subscription
	// is required.
	SubscriptionRequired

	// UndefinedCondition is returned when the error condition is not one
	// of those defined by the other conditions in this list.
	UndefinedCondition

	// UnexpectedRequest is returned when the recipient or server understood
	// the request but was not expecting it at this time.
	UnexpectedRequest
)

var errorConditionNames = map[ErrorCondition]string{
	BadRequest:            "bad-request",
	Conflict:              "conflict",
	FeatureNotImplemented: "feature-not-implemented",
	Forbidden:             "forbidden",
	Gone:                  "gone",
	InternalServerError:   "internal-server-error",
	ItemNotFound:          "item-not-found",
	JidMalformed:          "jid-malformed",
	NotAcceptable:         "not-acceptable",
	NotAllowed:            "not-allowed",
	NotAuthorized:         "not-authorized",
	PaymentRequired:       "payment-required",
	RecipientUnavailable:  "recipient-unavailable",
	Redirect:              "redirect",
	RegistrationRequired:  "registration-required",
	RemoteServerNotFound:  "remote-server-not-found",
	RemoteServerTimeout:   "remote-server-timeout",
	ResourceConstraint:    "resource-constraint",
	ServiceUnavailable:    "service-unavailable",
	SubscriptionRequired:  "subscription-required",
	UndefinedCondition:    "undefined-condition",
	UnexpectedRequest:     "unexpected-request",
}

// String returns ErrorCondition wire representation.
func (ec ErrorCondition) String() string {
	return errorConditionNames[ec]
}

// ErrorConditionFromString returns the ErrorCondition associated to a wire
// representation, or false when unrecognized.
func ErrorConditionFromString(str string) (ErrorCondition, bool) {
	for cond, name := range errorConditionNames {
		if name == str {
			return cond, true
		}
	}
	return 0, false
}

// legacyCodeTable maps every defined condition to its legacy numeric
// status code and associated error type, as published in XEP-0086.
// Row order determines which pair a shared code resolves to.
var legacyCodeTable = []struct {
	cond ErrorCondition
	typ  ErrorType
	code int
}{
	{BadRequest, Modify, 400},
	{Conflict, Cancel, 409},
	{FeatureNotImplemented, Cancel, 501},
	{Forbidden, Auth, 403},
	{Gone, Modify, 302},
	{InternalServerError, Wait, 500},
	{ItemNotFound, Cancel, 404},
	{JidMalformed, Modify, 400},
	{NotAcceptable, Modify, 406},
	{NotAllowed, Cancel, 405},
	{NotAuthorized, Auth, 401},
	{PaymentRequired, Auth, 402},
	{RecipientUnavailable, Wait, 404},
	{Redirect, Modify, 302},
	{RegistrationRequired, Auth, 407},
	{RemoteServerNotFound, Cancel, 404},
	{RemoteServerTimeout, Wait, 504},
	{ResourceConstraint, Wait, 500},
	{ServiceUnavailable, Cancel, 503},
	{SubscriptionRequired, Auth, 407},
	{UndefinedCondition, Wait, 500},
	{UnexpectedRequest, Wait, 400},
}

var errorDescriptions = map[ErrorCondition][2]string{
	BadRequest:            {"Bad request", "The sender has sent XML that is malformed or that cannot be processed."},
	Conflict:              {"Conflict", "Access cannot be granted because an existing resource or session exists with the same name or address."},
	FeatureNotImplemented: {"Feature not implemented", "The feature requested is not implemented by the recipient or server and therefore cannot be processed."},
	Forbidden:             {"Forbidden", "The requesting entity does not possess the required permissions to perform the action."},
	Gone:                  {"Gone", "The recipient or server can no longer be contacted at this address."},
	InternalServerError:   {"Internal server error", "The server could not process the stanza because of a misconfiguration or an otherwise-undefined internal server error."},
	ItemNotFound:          {"Item not found", "The addressed JID or item requested cannot be found."},
	JidMalformed:          {"JID malformed", "The sending entity has provided or communicated an XMPP address or aspect thereof that does not adhere to the defined syntax."},
	NotAcceptable:         {"Not acceptable", "The recipient or server understands the request but is refusing to process it because it does not meet the defined criteria."},
	NotAllowed:            {"Not allowed", "The recipient or server does not allow any entity to perform the action."},
	NotAuthorized:         {"Not authorized", "The sender must provide proper credentials before being allowed to perform the action, or has provided improper credentials."},
	PaymentRequired:       {"Payment required", "The requesting entity is not authorized to access the requested service because payment is required."},
	RecipientUnavailable:  {"Recipient unavailable", "The intended recipient is temporarily unavailable."},
	Redirect:              {"Redirect", "The recipient or server is redirecting requests for this information to another entity, usually temporarily."},
	RegistrationRequired:  {"Registration required", "The requesting entity is not authorized to access the requested service because registration is required."},
	RemoteServerNotFound:  {"Remote server not found", "A remote server or service specified as part or all of the JID of the intended recipient does not exist."},
	RemoteServerTimeout:   {"Remote server timeout", "A remote server or service specified as part or all of the JID of the intended recipient could not be contacted within a reasonable amount of time."},
	ResourceConstraint:    {"Resource constraint", "The server or recipient lacks the system resources necessary to service the request."},
	ServiceUnavailable:    {"Service unavailable", "The server or recipient does not currently provide the requested service."},
	SubscriptionRequired:  {"Subscription required", "The requesting entity is not authorized to access the requested service because a subscription is required."},
	UndefinedCondition:    {"Undefined condition", "The error condition is not one of those defined by the other conditions in this list."},
	UnexpectedRequest:     {"Unexpected request", "The recipient or server understood the request but was not expecting it at this time."},
}

// Error represents a structured stanza error.
type Error struct {
	Type      ErrorType
	Condition ErrorCondition
	Text      string
	TextLang  string
	AppSpec   XElement

	originalCode int
}

// NewError returns an initialized stanza error. A zero type or condition
// falls back to Cancel and UndefinedCondition respectively.
func NewError(errType ErrorType, condition ErrorCondition, text string, appSpec XElement) *Error {
	if errType == 0 {
		errType = Cancel
	}
	if condition == 0 {
		condition = UndefinedCondition
	}
	return &Error{
		Type:      errType,
		Condition: condition,
		Text:      text,
		AppSpec:   appSpec,
	}
}

// Error satisfies error interface.
func (e *Error) Error() string {
	if len(e.Text) > 0 {
		return e.Condition.String() + ": " + e.Text
	}
	return e.Condition.String()
}

// Code returns the legacy numeric status code associated to the error
// type and condition pair, or 0 when the pair has no published mapping.
func (e *Error) Code() int {
	for _, entry := range legacyCodeTable {
		if entry.cond == e.Condition && entry.typ == e.Type {
			return entry.code
		}
	}
	return 0
}

// LegacyCode returns the numeric status code the error serializes with:
// the originating code when the error was built from one, otherwise the
// published mapping for its type and condition pair.
func (e *Error) LegacyCode() int {
	if e.originalCode != 0 {
		return e.originalCode
	}
	return e.Code()
}

// FromCode initializes the error from a legacy numeric status code,
// returning whether the code is recognized. The originating code is kept
// so that re-serialization favors it when several pairs share one code.
func (e *Error) FromCode(code int) bool {
	for _, entry := range legacyCodeTable {
		if entry.code == code {
			e.Type = entry.typ
			e.Condition = entry.cond
			e.originalCode = code
			return true
		}
	}
	return false
}

// Description returns a display title and explanation pair
// associated to the error condition.
func (e *Error) Description() (title, description string) {
	d := errorDescriptions[e.Condition]
	return d[0], d[1]
}

// Element returns the error wire representation as a child
// of a stanza qualified by baseNS.
func (e *Error) Element(baseNS string) *Element {
	errEl := NewElementName("error")
	if code := e.LegacyCode(); code != 0 {
		errEl.SetAttribute("code", strconv.Itoa(code))
	}
	if tp := e.Type.String(); len(tp) > 0 {
		errEl.SetType(tp)
	}
	if cond := e.Condition.String(); len(cond) > 0 {
		errEl.AppendElement(NewElementNamespace(cond, StanzasNamespace))
	}
	if len(e.Text) > 0 {
		textEl := NewElementText("text", StanzasNamespace, e.Text)
		if len(e.TextLang) > 0 {
			textEl.SetLanguage(e.TextLang)
		}
		errEl.AppendElement(textEl)
	}
	if e.AppSpec != nil {
		errEl.AppendElement(NewElementFromElement(e.AppSpec))
	}
	return errEl
}

// FromElement initializes the error from its wire representation,
// returning false when el is not an error element. Malformed or
// unrecognized detail degrades to Cancel and UndefinedCondition
// rather than failing the parse.
func (e *Error) FromElement(el XElement, baseNS string) bool {
	if el.Name() != "error" {
		return false
	}
	e.Type = ErrorTypeFromString(el.Type())
	e.Condition = 0
	e.Text = ""
	e.TextLang = ""
	e.AppSpec = nil
	e.originalCode = 0

	if code, err := strconv.Atoi(el.Attributes().Get("code")); err == nil && code > 0 {
		e.originalCode = code
	}
	for _, child := range el.Elements().All() {
		ns := child.Namespace()
		switch {
		case ns == StanzasNamespace && child.Name() == "text":
			e.Text = child.Text()
			e.TextLang = child.Language()
		case ns == StanzasNamespace:
			if e.Condition == 0 {
				if cond, ok := ErrorConditionFromString(child.Name()); ok {
					e.Condition = cond
				}
			}
		case len(ns) > 0 && ns != baseNS:
			if e.AppSpec == nil {
				e.AppSpec = NewElementFromElement(child)
			}
		}
	}
	if (e.Type == 0 || e.Condition == 0) && e.originalCode != 0 {
		// pre-structured-error stanzas carry only a numeric code
		var legacy Error
		if legacy.FromCode(e.originalCode) {
			if e.Type == 0 {
				e.Type = legacy.Type
			}
			if e.Condition == 0 {
				e.Condition = legacy.Condition
			}
		}
	}
	if e.Type == 0 {
		e.Type = Cancel
	}
	if e.Condition == 0 {
		e.Condition = UndefinedCondition
	}
	return true
}

// NewErrorFromElement parses an error element into a structured error.
// Returns nil when el is not a conformant error element.
func NewErrorFromElement(el XElement, baseNS string) *Error {
	e := &Error{}
	if !e.FromElement(el, baseNS) {
		return nil
	}
	return e
}
