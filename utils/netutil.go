package utils

import (
	"errors"
	"fmt"
	"net"
	"sort"
)

// Wildcard is the bind token meaning "all interfaces".
const Wildcard = "0.0.0.0"

// ErrInvalidAddress is returned by Resolve for tokens that name neither a
// known interface nor an address bound to one.
var ErrInvalidAddress = errors.New("not a known interface or address")

// Resolver maps interface names to their IPv4 addresses and tracks the bind
// address selected for the listener. The map is built once at startup and
// read-only afterward; Resolve must run before the listener binds.
type Resolver struct {
	ifaces   map[string][]string
	names    []string
	selected string
}

// NewResolver enumerates the host's interfaces, keeping only those with at
// least one IPv4 address.
func NewResolver() (*Resolver, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string)
	for _, ifc := range ifaces {
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if v, ok := a.(*net.IPNet); ok {
				if ip := v.IP.To4(); ip != nil {
					m[ifc.Name] = append(m[ifc.Name], ip.String())
				}
			}
		}
	}
	return newResolver(m), nil
}

func newResolver(ifaces map[string][]string) *Resolver {
	names := make([]string, 0, len(ifaces))
	for name := range ifaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Resolver{ifaces: ifaces, names: names}
}

// Resolve selects the bind address for token: an interface name selects its
// first address, a known literal address or the wildcard selects itself.
func (r *Resolver) Resolve(token string) (string, error) {
	if addrs, ok := r.ifaces[token]; ok && len(addrs) > 0 {
		r.selected = addrs[0]
		return r.selected, nil
	}
	if token == Wildcard {
		r.selected = token
		return r.selected, nil
	}
	for _, name := range r.names {
		for _, addr := range r.ifaces[name] {
			if addr == token {
				r.selected = token
				return r.selected, nil
			}
		}
	}
	return "", fmt.Errorf("%q: %w", token, ErrInvalidAddress)
}

// Selected returns the resolved bind address, or "" before Resolve succeeds.
func (r *Resolver) Selected() string {
	return r.selected
}

// Names returns the interface names in sorted order, for stable display.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// AccessAddresses reports where the listener can be reached, for display
// only: the full interface map when bound to the wildcard, a singleton
// owning-interface entry for a specific address, empty if nothing was
// resolved yet.
func (r *Resolver) AccessAddresses() map[string][]string {
	out := make(map[string][]string)
	if r.selected == "" {
		return out
	}
	if r.selected == Wildcard {
		for name, addrs := range r.ifaces {
			out[name] = append([]string(nil), addrs...)
		}
		return out
	}
	for _, name := range r.names {
		for _, addr := range r.ifaces[name] {
			if addr == r.selected {
				out[name] = []string{addr}
				return out
			}
		}
	}
	return out
}
