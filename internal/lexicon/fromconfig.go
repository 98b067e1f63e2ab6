package lexicon

import (
	"strings"

	"github.com/dax233/brainhole/internal/config"
	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/repository"
)

// FromSettings binds the configured lexicon entries to their handlers
// and builds the registry. Handler names are resolved here, once; an
// unknown name is a ConfigError and aborts startup.
func FromSettings(settings []config.LexiconSetting, entries repository.EntryRepo) (*Registry, error) {
	descs := make([]*Descriptor, 0, len(settings))
	for _, s := range settings {
		h, err := NewHandler(s.Handler, entries)
		if err != nil {
			return nil, domain.NewConfigError(s.Name, "%v (known handlers: %s)", err, strings.Join(HandlerKinds(), ", "))
		}

		retry := 0
		if s.RetryAttempts != nil {
			retry = *s.RetryAttempts
		}

		descs = append(descs, &Descriptor{
			Name:           s.Name,
			Table:          s.TableName,
			SearchColumn:   s.SearchColumn,
			Keywords:       s.Keywords,
			Placeholder:    s.Placeholder,
			Folder:         s.FolderName,
			Extensions:     s.FileExtensions,
			RetryBudget:    retry,
			FailureMessage: s.FailureMessage,
			Handler:        h,
		})
	}
	return Build(descs)
}
