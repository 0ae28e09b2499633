/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model"
	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"dirpx.dev/dxbook/dxcore/parser"
	"dirpx.dev/dxbook/internal/style"
)

func (a *app) groupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups and memberships",
		RunE:  requireSubcommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add gn/GROUP [r/LINK]",
		Short: "Add a group",
		Long: `Add an empty group, optionally with a repository link.

Examples:
  dxbook group add gn/CS2103
  dxbook group add gn/CS2103 T01 r/https://github.com/org/tp`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runGroupAdd,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE:  a.runGroupList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete GROUP",
		Short: "Delete a group and remove it from every person",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runGroupDelete,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "link gn/GROUP r/LINK",
		Short: "Set a group's repository link",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runGroupLink,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "assign n/NAME gn/GROUP",
		Short: "Make a person a member of a group",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runGroupAssign,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unassign n/NAME gn/GROUP",
		Short: "Remove a person from a group",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runGroupUnassign,
	})

	return cmd
}

func (a *app) runGroupAdd(cmd *cobra.Command, args []string) error {
	ga, err := parser.ParseGroupArgs(joinArgs(args))
	if err != nil {
		return err
	}
	g, err := ga.Group()
	if err != nil {
		return err
	}

	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.AddGroup(g)
	})
	if err != nil {
		return err
	}

	a.log.Info("group added", "group", model.SafeString(g, a.verbose(cmd)))
	a.success("Added group %s", style.Name.Render(g.Name.String()))
	return nil
}

func (a *app) runGroupList(cmd *cobra.Command, _ []string) error {
	book, err := a.store("").LoadOrNew(cmd.Context())
	if err != nil {
		return err
	}

	groups := book.Groups()
	if len(groups) == 0 {
		a.warn("No groups. Run 'dxbook group add gn/GROUP' to add one.")
		return nil
	}
	for i, g := range groups {
		members := make([]string, len(g.Members))
		for j, m := range g.Members {
			members[j] = m.String()
		}
		fmt.Fprintf(a.stdout, "%d. %s  %s  (%d members: %s)\n", i+1,
			style.Name.Render(g.Name.String()),
			style.Dim.Render(g.RepoLink.String()),
			len(members), strings.Join(members, ", "))
	}
	return nil
}

func (a *app) runGroupDelete(cmd *cobra.Command, args []string) error {
	name, err := parser.ParseGroupName(joinArgs(args))
	if err != nil {
		return err
	}
	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.RemoveGroup(name)
	})
	if err != nil {
		return err
	}
	a.success("Deleted group %s", style.Name.Render(name.String()))
	return nil
}

func (a *app) runGroupLink(cmd *cobra.Command, args []string) error {
	ga, err := parser.ParseGroupArgs(joinArgs(args))
	if err != nil {
		return err
	}
	if !ga.RepoLink.IsSet() {
		return &dxerrors.ParseError{Type: "arguments", Value: parser.PrefixRepoLink.Marker(), Reason: parser.ReasonMissingPrefixes}
	}

	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		g, ok := b.Group(ga.Name)
		if !ok {
			return fmt.Errorf("%w: %s", dxerrors.ErrGroupNotFound, ga.Name)
		}
		return b.SetGroup(ga.Name, g.WithRepoLink(ga.RepoLink))
	})
	if err != nil {
		return err
	}
	a.success("Linked %s to %s", style.Name.Render(ga.Name.String()), ga.RepoLink)
	return nil
}

func (a *app) runGroupAssign(cmd *cobra.Command, args []string) error {
	ma, err := parser.ParseMembershipArgs(joinArgs(args))
	if err != nil {
		return err
	}
	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.Assign(ma.Name, ma.Group)
	})
	if err != nil {
		return err
	}
	a.success("Assigned %s to %s", style.Name.Render(ma.Name.String()), style.Name.Render(ma.Group.String()))
	return nil
}

func (a *app) runGroupUnassign(cmd *cobra.Command, args []string) error {
	ma, err := parser.ParseMembershipArgs(joinArgs(args))
	if err != nil {
		return err
	}
	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.Unassign(ma.Name, ma.Group)
	})
	if err != nil {
		return err
	}
	a.success("Removed %s from %s", style.Name.Render(ma.Name.String()), style.Name.Render(ma.Group.String()))
	return nil
}
