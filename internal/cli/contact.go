package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekazarova/rolodex/internal/common"
	"github.com/ekazarova/rolodex/internal/models"
)

// List prints the collection, optionally narrowed by a search query.
func (a *App) List(ctx context.Context, query string) error {
	list, err := a.contacts.List(ctx, query)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if len(list) == 0 {
		if query == "" {
			fmt.Fprintln(a.out, "No contacts yet; use 'new' to add one.")
		} else {
			fmt.Fprintf(a.out, "No contacts match %q.\n", query)
		}
		return nil
	}

	for _, c := range list {
		fmt.Fprintln(a.out, formatLine(c))
	}
	return nil
}

// Show prints one contact in full.
func (a *App) Show(ctx context.Context, id string) error {
	c, err := a.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "No contact with id %s.\n", id)
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}

	name := c.DisplayName()
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(a.out, "%s\n", name)
	fmt.Fprintf(a.out, "  id:       %s\n", c.ID)
	if c.Twitter != "" {
		fmt.Fprintf(a.out, "  twitter:  %s\n", c.Twitter)
	}
	if c.Avatar != "" {
		fmt.Fprintf(a.out, "  avatar:   %s\n", c.Avatar)
	}
	if c.Notes != "" {
		fmt.Fprintf(a.out, "  notes:    %s\n", c.Notes)
	}
	fmt.Fprintf(a.out, "  favorite: %v\n", c.Favorite)
	fmt.Fprintf(a.out, "  created:  %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// New creates a blank contact and immediately prompts for its fields.
func (a *App) New(ctx context.Context) error {
	c, err := a.contacts.Create(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Created contact %s.\n", c.ID)
	return a.Edit(ctx, c.ID)
}

// Edit prompts for each field; an empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	current, err := a.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "No contact with id %s.\n", id)
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}

	patch, err := a.promptPatch(current)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if _, err := a.contacts.Update(ctx, id, patch); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

// Favorite toggles the favorite flag.
func (a *App) Favorite(ctx context.Context, id string) error {
	current, err := a.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "No contact with id %s.\n", id)
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}

	fav := !current.Favorite
	if _, err := a.contacts.Update(ctx, id, models.ContactPatch{Favorite: &fav}); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if fav {
		fmt.Fprintln(a.out, "Marked as favorite.")
	} else {
		fmt.Fprintln(a.out, "Removed from favorites.")
	}
	return nil
}

// Remove deletes a contact; a missing id is reported, not treated as failure.
func (a *App) Remove(ctx context.Context, id string) error {
	ok, err := a.contacts.Delete(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "No contact with id %s.\n", id)
		return nil
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

// promptPatch collects field edits; only answered fields enter the patch.
func (a *App) promptPatch(current *models.Contact) (models.ContactPatch, error) {
	var patch models.ContactPatch

	prompts := []struct {
		label   string
		current string
		dst     **string
	}{
		{"First name", current.First, &patch.First},
		{"Last name", current.Last, &patch.Last},
		{"Twitter", current.Twitter, &patch.Twitter},
		{"Avatar URL", current.Avatar, &patch.Avatar},
	}
	for _, p := range prompts {
		label := p.label
		if p.current != "" {
			label = fmt.Sprintf("%s [%s]", p.label, p.current)
		}
		answer, err := GetSimpleText(a.reader, label+" (empty keeps current)", a.out)
		if err != nil {
			return models.ContactPatch{}, err
		}
		if answer != "" {
			v := answer
			*p.dst = &v
		}
	}

	notes, err := GetMultiline(a.reader, "Notes (empty keeps current)", a.out)
	if err != nil {
		return models.ContactPatch{}, err
	}
	if notes != "" {
		patch.Notes = &notes
	}

	return patch, nil
}

func formatLine(c models.Contact) string {
	name := c.DisplayName()
	if name == "" {
		name = "(no name)"
	}
	star := " "
	if c.Favorite {
		star = "*"
	}
	line := fmt.Sprintf("%s %-24s %s", star, name, c.ID)
	if c.Twitter != "" {
		line += "  " + c.Twitter
	}
	return line
}
