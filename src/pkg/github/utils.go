package github

import "fmt"

// CommitURL returns the github.com page of a commit
func CommitURL(owner, repo, sha string) string {
	return fmt.Sprintf("https://github.com/%s/%s/commit/%s", owner, repo, sha)
}
