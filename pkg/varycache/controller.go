package varycache

import (
	"errors"
	"log/slog"
	"maps"
)

// Controller is the request-scoped segmentation state: the ordered group
// registry, the no-cache flag, the pending-write flags, and the lifecycle
// guard. Build one per request via Manager.NewController and discard it
// when the request ends; a fresh request means a fresh Controller.
//
// Controllers are not safe for concurrent use. A request is handled by one
// goroutine at a time, matching the host model this component targets.
type Controller struct {
	m *Manager

	names    []string // registration order, drives cookie serialization
	segments map[string]string
	noCache  bool

	// Pending-write flags: a cookie rewrite happens when either is set.
	// Registering a group alone does not set them; only assignments and
	// no-cache toggles re-issue the cookie.
	groupsChanged  bool
	noCacheChanged bool

	headersSent bool
	observers   []func(Emission)
}

// guard returns ErrDidSendHeaders once the boundary event has fired.
// Every mutator checks it before touching state.
func (c *Controller) guard() error {
	if c.headersSent {
		return ErrDidSendHeaders
	}
	return nil
}

// RegisterGroup adds a segmentation group with an empty segment value.
// Registering an existing group is a no-op. A name that fails validation
// returns ErrInvalidGroupName and additionally raises a diagnostic warning
// on the Manager logger, since a bad group name is a programming mistake
// the developer should see even when the return value is discarded.
func (c *Controller) RegisterGroup(name string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := c.validateGroupName(name); err != nil {
		return err
	}
	c.addGroup(name)
	return nil
}

// RegisterGroups registers every name in the list atomically: a single
// invalid name rejects the whole batch and the registry is left exactly as
// it was before the call.
func (c *Controller) RegisterGroups(names []string) error {
	if err := c.guard(); err != nil {
		return err
	}
	for _, name := range names {
		if err := c.validateGroupName(name); err != nil {
			return err
		}
	}
	for _, name := range names {
		c.addGroup(name)
	}
	return nil
}

// SetGroupForUser assigns the current client to a segment of a group,
// registering the group if needed, and marks the cookie for rewrite.
// Name violations are reported as ErrInvalidGroupName, value violations as
// ErrInvalidGroupSegment.
func (c *Controller) SetGroupForUser(name, value string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if name == "" {
		return errors.Join(ErrInvalidGroupName, ErrInvalidTokenChars)
	}
	if err := validateToken(name); err != nil {
		return errors.Join(ErrInvalidGroupName, err)
	}
	if err := validateToken(value); err != nil {
		return errors.Join(ErrInvalidGroupSegment, err)
	}

	c.addGroup(name)
	c.segments[name] = value
	c.groupsChanged = true
	return nil
}

// IsUserInGroup reports whether the group is present in the registry. An
// empty segment value still counts as membership; a never-registered name
// does not.
func (c *Controller) IsUserInGroup(name string) bool {
	_, ok := c.segments[name]
	return ok
}

// IsUserInGroupSegment reports whether the group is registered and its
// stored segment value equals value exactly. The empty string and "0" are
// distinct segment values; an unknown group is never a match.
func (c *Controller) IsUserInGroupSegment(name, value string) bool {
	stored, ok := c.segments[name]
	return ok && stored == value
}

// Groups returns a snapshot of the registry. Mutating the returned map has
// no effect on the Controller.
func (c *Controller) Groups() map[string]string {
	return maps.Clone(c.segments)
}

// NoCache reports the state of the no-cache flag.
func (c *Controller) NoCache() bool { return c.noCache }

// SetNoCacheForUser flags the current client to bypass the shared cache.
// The cookie is always rewritten after a toggle, but no-cache on its own
// never contributes the segmentation Vary token.
func (c *Controller) SetNoCacheForUser() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.noCache = true
	c.noCacheChanged = true
	return nil
}

// RemoveNoCacheForUser clears the no-cache flag.
func (c *Controller) RemoveNoCacheForUser() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.noCache = false
	c.noCacheChanged = true
	return nil
}

// HeadersSent reports whether the boundary event already fired for this
// request.
func (c *Controller) HeadersSent() bool { return c.headersSent }

func (c *Controller) validateGroupName(name string) error {
	err := validateToken(name)
	if err == nil && name == "" {
		err = ErrInvalidTokenChars
	}
	if err != nil {
		err = errors.Join(ErrInvalidGroupName, err)
		c.m.log.Warn("segmentation group rejected",
			slog.String("group", name),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (c *Controller) addGroup(name string) {
	if c.segments == nil {
		c.segments = make(map[string]string)
	}
	if _, exists := c.segments[name]; !exists {
		c.names = append(c.names, name)
		c.segments[name] = ""
	}
}
