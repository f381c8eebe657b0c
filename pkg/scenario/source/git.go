package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"helmline-hq/meridian/pkg/portfolio"
	"helmline-hq/meridian/pkg/portfolio/parser"
)

// GitConfig configures a GitSource.
type GitConfig struct {
	// Repository is the clone URL or local path of the scenario repo.
	Repository string `yaml:"repository"`

	// Branch is the branch to track.
	Branch string `yaml:"branch"`

	// Path is the subdirectory inside the repo holding scenario YAML
	// files. Empty means the repository root.
	Path string `yaml:"path"`

	// LocalPath is where the repo is cloned. Defaults to a directory
	// under the OS temp dir.
	LocalPath string `yaml:"local_path"`

	// Depth limits clone history. Zero clones the full history.
	Depth int `yaml:"depth"`

	// Timeout bounds clone and pull operations.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultGitConfig returns the default Git source configuration.
func DefaultGitConfig() GitConfig {
	return GitConfig{
		Branch:  "main",
		Timeout: 30 * time.Second,
	}
}

// CommitInfo describes the HEAD commit scenarios were loaded from, for
// decision provenance.
type CommitInfo struct {
	SHA       string    `json:"sha"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Branch    string    `json:"branch"`
}

// GitSource loads scenarios from a branch of a git repository. Open
// clones or reuses a local checkout; Refresh pulls the tracked branch.
type GitSource struct {
	config GitConfig
	parser *parser.Parser

	mu   sync.Mutex
	repo *gogit.Repository
}

// NewGitSource creates a git-backed scenario source.
func NewGitSource(config GitConfig) (*GitSource, error) {
	if config.Repository == "" {
		return nil, fmt.Errorf("repository cannot be empty")
	}
	if config.Branch == "" {
		config.Branch = "main"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.LocalPath == "" {
		config.LocalPath = filepath.Join(os.TempDir(), "meridian-scenarios")
	}
	return &GitSource{
		config: config,
		parser: parser.NewParser(),
	}, nil
}

// Open clones the repository, or opens the existing checkout when one
// is already present at the local path.
func (s *GitSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("opening existing checkout: %w", err)
		}
		s.repo = repo
		return nil
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("creating checkout directory: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Depth:         s.config.Depth,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", s.config.Repository, err)
	}
	s.repo = repo
	return nil
}

// Refresh pulls the tracked branch and reports whether HEAD moved.
func (s *GitSource) Refresh(ctx context.Context) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return false, fmt.Errorf("repository not opened, call Open first")
	}

	head, err := s.repo.Head()
	if err != nil {
		return false, fmt.Errorf("reading HEAD: %w", err)
	}
	before := head.Hash()

	worktree, err := s.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return false, fmt.Errorf("pulling %s: %w", s.config.Branch, err)
	}

	head, err = s.repo.Head()
	if err != nil {
		return false, fmt.Errorf("reading HEAD after pull: %w", err)
	}
	return head.Hash() != before, nil
}

// Load parses every scenario YAML file under the configured subpath of
// the checkout. Open must have been called.
func (s *GitSource) Load(ctx context.Context) ([]*portfolio.Scenario, error) {
	s.mu.Lock()
	repo := s.repo
	s.mu.Unlock()

	if repo == nil {
		return nil, fmt.Errorf("repository not opened, call Open first")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := s.config.LocalPath
	if s.config.Path != "" {
		dir = filepath.Join(dir, s.config.Path)
	}
	return s.parser.ParseDir(dir)
}

// Describe identifies the source for logs.
func (s *GitSource) Describe() string {
	return fmt.Sprintf("git %s@%s", s.config.Repository, s.config.Branch)
}

// CurrentCommit returns metadata about the checkout's HEAD commit.
func (s *GitSource) CurrentCommit() (*CommitInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil, fmt.Errorf("repository not opened, call Open first")
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}
	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", head.Hash(), err)
	}

	return &CommitInfo{
		SHA:       commit.Hash.String(),
		Author:    commit.Author.Name,
		Timestamp: commit.Author.When,
		Message:   commit.Message,
		Branch:    s.config.Branch,
	}, nil
}
