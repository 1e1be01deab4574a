package git

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
)

const (
	defaultAfterMarker    = "HEAD"
	fallbackBeforeMarker  = "HEAD~1"
	unresolvedMarkerZeros = "0000000"
)

// GitRevisionRepository implements repositories.RevisionRepository on top of
// the local git history of the data repository.
type GitRevisionRepository struct{}

// NewGitRevisionRepository creates a new GitRevisionRepository.
func NewGitRevisionRepository() *GitRevisionRepository {
	return &GitRevisionRepository{}
}

// ChangedEntities lists the entity data files whose content differs between
// the resolved markers. The default before marker is the last commit that
// touched the patch store, which is the last processed state even when
// several pull requests merge concurrently; the default after marker is HEAD.
//
// An unresolvable before marker is the history-unavailable case: it is
// recovered locally by reporting every data file at after as added.
func (it *GitRevisionRepository) ChangedEntities(
	ctx context.Context,
	query repositories.RevisionQuery,
) (*entities.ChangeSet, error) {
	repo, err := openRepository(query.RepoRoot)
	if err != nil {
		return nil, err
	}

	afterMarker := query.After
	if afterMarker == "" {
		afterMarker = defaultAfterMarker
	}
	afterTree, afterHash, err := treeAt(repo, afterMarker)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve after marker %q: %w", afterMarker, err)
	}

	beforeMarker := query.Before
	if beforeMarker == "" || strings.HasPrefix(beforeMarker, unresolvedMarkerZeros) {
		beforeMarker = it.baselineMarker(repo, afterHash, query.PatchesFile)
	}

	beforeTree, _, err := treeAt(repo, beforeMarker)
	if err != nil {
		logger.Warnf(
			"%v: before marker %q cannot be resolved, treating all entities as new",
			entities.ErrHistoryUnavailable, beforeMarker,
		)
		files, listErr := listDataFiles(afterTree, query.DataDir)
		if listErr != nil {
			return nil, listErr
		}
		return &entities.ChangeSet{Before: "", After: afterMarker, Files: files}, nil
	}

	changes, err := object.DiffTreeWithOptions(ctx, beforeTree, afterTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	files := make([]entities.ChangedFile, 0, len(changes))
	for _, change := range changes {
		changed, ok, changeErr := classifyChange(change, query.DataDir)
		if changeErr != nil {
			return nil, changeErr
		}
		if ok {
			files = append(files, changed)
		}
	}

	return &entities.ChangeSet{Before: beforeMarker, After: afterMarker, Files: files}, nil
}

// ContentAt fetches a file's parsed content at a marker. A file missing at
// that marker yields Absent; malformed JSON is reported as an invalid
// entity state so the caller can isolate that entity.
func (it *GitRevisionRepository) ContentAt(
	_ context.Context,
	repoRoot, marker, filePath string,
) (entities.Value, error) {
	repo, err := openRepository(repoRoot)
	if err != nil {
		return entities.Absent(), err
	}

	tree, _, err := treeAt(repo, marker)
	if err != nil {
		return entities.Absent(), fmt.Errorf("failed to resolve marker %q: %w", marker, err)
	}

	file, err := tree.File(path.Clean(filePath))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return entities.Absent(), nil
		}
		return entities.Absent(), fmt.Errorf("failed to read %s at %s: %w", filePath, marker, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return entities.Absent(), fmt.Errorf("failed to read %s at %s: %w", filePath, marker, err)
	}

	value, err := entities.ParseValue([]byte(contents))
	if err != nil {
		return entities.Absent(), fmt.Errorf(
			"%w: %s at %s is not valid JSON: %v",
			entities.ErrInvalidEntityState, filePath, marker, err,
		)
	}
	return value, nil
}

// HeadAuthor returns the author name of the newest commit.
func (it *GitRevisionRepository) HeadAuthor(_ context.Context, repoRoot string) (string, error) {
	repo, err := openRepository(repoRoot)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	return commit.Author.Name, nil
}

// baselineMarker finds the last commit that modified the patch store, which
// marks the last processed state. Falls back to the parent of HEAD.
func (it *GitRevisionRepository) baselineMarker(
	repo *gogit.Repository,
	from plumbing.Hash,
	patchesFile string,
) string {
	cleaned := path.Clean(patchesFile)
	log, err := repo.Log(&gogit.LogOptions{From: from, FileName: &cleaned})
	if err != nil {
		return fallbackBeforeMarker
	}
	defer log.Close()

	commit, err := log.Next()
	if err != nil {
		return fallbackBeforeMarker
	}
	return commit.Hash.String()
}

func openRepository(root string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %q: %w", root, err)
	}
	return repo, nil
}

func treeAt(repo *gogit.Repository, marker string) (*object.Tree, plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(marker))
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}
	return tree, *hash, nil
}

// classifyChange maps a tree diff entry to a ChangedFile, filtering out
// anything that is not an entity data file.
func classifyChange(change *object.Change, dataDir string) (entities.ChangedFile, bool, error) {
	action, err := change.Action()
	if err != nil {
		return entities.ChangedFile{}, false, fmt.Errorf("failed to classify change: %w", err)
	}

	var filePath string
	var status entities.ChangeStatus
	switch action {
	case merkletrie.Insert:
		filePath = change.To.Name
		status = entities.StatusAdded
	case merkletrie.Delete:
		filePath = change.From.Name
		status = entities.StatusDeleted
	case merkletrie.Modify:
		filePath = change.To.Name
		status = entities.StatusModified
	default:
		return entities.ChangedFile{}, false, nil
	}

	if !isDataFile(filePath, dataDir) {
		return entities.ChangedFile{}, false, nil
	}
	return entities.ChangedFile{Path: filePath, Status: status}, true, nil
}

func listDataFiles(tree *object.Tree, dataDir string) ([]entities.ChangedFile, error) {
	var files []entities.ChangedFile
	err := tree.Files().ForEach(func(file *object.File) error {
		if isDataFile(file.Name, dataDir) {
			files = append(files, entities.ChangedFile{
				Path:   file.Name,
				Status: entities.StatusAdded,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list data files: %w", err)
	}
	return files, nil
}

func isDataFile(filePath, dataDir string) bool {
	return strings.HasPrefix(filePath, dataDir+"/") && strings.HasSuffix(filePath, ".json")
}
