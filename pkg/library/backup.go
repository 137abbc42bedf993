package library

import (
	"context"
	"time"

	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// BackupVersion is the format version written by Snapshot.
const BackupVersion = 1

// Backup is a full copy of a library.
type Backup struct {
	Version   int             `json:"version" yaml:"version"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
	Lists     []wordlist.List `json:"lists" yaml:"lists"`
	Kawas     []kawa.Kawa     `json:"kawas" yaml:"kawas"`
}

// Snapshot captures every list and KaWa.
func (l *Library) Snapshot(ctx context.Context) (Backup, error) {
	lists, err := l.Lists(ctx)
	if err != nil {
		return Backup{}, err
	}
	kawas, err := l.Kawas(ctx)
	if err != nil {
		return Backup{}, err
	}
	return Backup{
		Version:   BackupVersion,
		CreatedAt: l.now().UTC(),
		Lists:     lists,
		Kawas:     kawas,
	}, nil
}

// Restore writes every list and KaWa in b. With replace set, existing lists
// and KaWas not in b are deleted first; otherwise b is merged over them.
// Entries are validated before anything is written.
func (l *Library) Restore(ctx context.Context, b Backup, replace bool) error {
	for _, list := range b.Lists {
		if _, err := wordlist.New(list.Name); err != nil {
			return err
		}
	}
	for _, k := range b.Kawas {
		if _, err := kawa.New(k.Word); err != nil {
			return err
		}
	}

	if replace {
		if err := l.clear(ctx); err != nil {
			return err
		}
	}
	for _, list := range b.Lists {
		if err := l.SaveList(ctx, list); err != nil {
			return err
		}
	}
	for _, k := range b.Kawas {
		if err := l.SaveKawa(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// clear removes lists and KaWas but leaves other keys such as settings.
func (l *Library) clear(ctx context.Context) error {
	for _, prefix := range []string{ListPrefix, KawaPrefix} {
		names, err := l.names(ctx, prefix)
		if err != nil {
			return err
		}
		for _, n := range names {
			if err := l.remove(ctx, prefix, n); err != nil {
				return err
			}
		}
	}
	return nil
}
