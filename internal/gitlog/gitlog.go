package gitlog

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"chronolist/internal/logs"
)

const dateLayout = "Mon Jan _2 15:04:05 2006 -0700"

// History renders a `git log -p` style dump of every commit touching the
// given file, newest first. Each block carries the commit hash, author,
// a Date: line, the message, and the file's patch. Commits whose patch
// cannot be computed are skipped, not fatal.
func History(repoPath, file string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", repoPath, err)
	}

	iter, err := repo.Log(&git.LogOptions{FileName: &file})
	if err != nil {
		return "", fmt.Errorf("read log for %s: %w", file, err)
	}
	defer iter.Close()

	var sb strings.Builder
	err = iter.ForEach(func(c *object.Commit) error {
		patch, err := filePatch(c, file)
		if err != nil {
			logs.Logger.Printf("skipping commit %s: %v", c.Hash, err)
			return nil
		}

		fmt.Fprintf(&sb, "commit %s\n", c.Hash)
		fmt.Fprintf(&sb, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
		fmt.Fprintf(&sb, "Date:   %s\n\n", c.Author.When.Format(dateLayout))
		for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
		sb.WriteString("\n")
		sb.WriteString(patch)
		sb.WriteString("\n")
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walk log for %s: %w", file, err)
	}

	return sb.String(), nil
}

// filePatch diffs a commit against its first parent (or the empty tree
// for a root commit), restricted to changes of the tracked file.
func filePatch(c *object.Commit, file string) (string, error) {
	tree, err := c.Tree()
	if err != nil {
		return "", err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return "", err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return "", err
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", err
	}

	var fileChanges object.Changes
	for _, change := range changes {
		if change.From.Name == file || change.To.Name == file {
			fileChanges = append(fileChanges, change)
		}
	}
	if len(fileChanges) == 0 {
		return "", nil
	}

	patch, err := fileChanges.Patch()
	if err != nil {
		return "", err
	}
	return patch.String(), nil
}
