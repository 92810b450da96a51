package models

import (
	"fmt"
	"strings"
)

// RoutePrefix is the path prefix of the commit page route
const RoutePrefix = "/repositories/"

// Coordinates identifies which commit's data to load
type Coordinates struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	CommitOID string `json:"commitOid"`
}

// Valid reports whether all three parts are set. Incomplete coordinates never trigger a fetch.
func (c Coordinates) Valid() bool {
	return c.Owner != "" && c.Repo != "" && c.CommitOID != ""
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s/%s@%s", c.Owner, c.Repo, c.CommitOID)
}

// ShortOID returns the first 7 characters of the commit oid
func (c Coordinates) ShortOID() string {
	return ShortSHA(c.CommitOID)
}

// WithCommit returns the same repository coordinates pointed at another commit
func (c Coordinates) WithCommit(oid string) Coordinates {
	c.CommitOID = oid
	return c
}

// ParseCoordinates parses commit coordinates from command line arguments.
// Accepted forms:
//
//	owner/repo@oid
//	owner/repo oid
//	/repositories/owner/repo/commits/oid
func ParseCoordinates(args ...string) (Coordinates, error) {
	switch len(args) {
	case 1:
		arg := strings.TrimSpace(args[0])
		if strings.HasPrefix(arg, RoutePrefix) {
			return parseRoute(arg)
		}
		repo, oid, found := strings.Cut(arg, "@")
		if !found {
			return Coordinates{}, fmt.Errorf("invalid commit coordinates %q: expected owner/repo@oid", arg)
		}
		return parseRepoAndOID(repo, oid)
	case 2:
		return parseRepoAndOID(strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
	default:
		return Coordinates{}, fmt.Errorf("expected 1 or 2 arguments, got %d", len(args))
	}
}

func parseRepoAndOID(repo, oid string) (Coordinates, error) {
	owner, name, found := strings.Cut(repo, "/")
	if !found || strings.Contains(name, "/") {
		return Coordinates{}, fmt.Errorf("invalid repository format: %s", repo)
	}
	c := Coordinates{Owner: owner, Repo: name, CommitOID: oid}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("incomplete commit coordinates: %s", c)
	}
	return c, nil
}

// parseRoute parses /repositories/{owner}/{repo}/commits/{commitOid}
func parseRoute(path string) (Coordinates, error) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, RoutePrefix), "/"), "/")
	if len(parts) != 4 || parts[2] != "commits" {
		return Coordinates{}, fmt.Errorf("invalid commit route: %s", path)
	}
	c := Coordinates{Owner: parts[0], Repo: parts[1], CommitOID: parts[3]}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("incomplete commit coordinates: %s", c)
	}
	return c, nil
}

func ShortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
