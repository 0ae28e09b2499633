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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dxerrors "dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model"
	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"dirpx.dev/dxbook/dxcore/parser"
	"dirpx.dev/dxbook/internal/style"
)

func (a *app) personCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage persons",
		RunE:  requireSubcommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add n/NAME e/EMAIL [g/GROUP]...",
		Short: "Add a person",
		Long: `Add a person to the address book.

Every group given with g/ must already exist; the person becomes a member.

Examples:
  dxbook person add n/Alice Pauline e/e1234567
  dxbook person add n/Bob e/e7654321 g/CS2103 g/CS2101`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runPersonAdd,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit n/NAME e/EMAIL",
		Short: "Change a person's email",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runPersonEdit,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List persons",
		Args:  cobra.NoArgs,
		RunE:  a.runPersonList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a person and remove it from every group",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runPersonDelete,
	})

	return cmd
}

func (a *app) runPersonAdd(cmd *cobra.Command, args []string) error {
	pa, err := parser.ParsePersonArgs(joinArgs(args), a.rule)
	if err != nil {
		return err
	}
	p, err := pa.Person()
	if err != nil {
		return err
	}

	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.AddPerson(p)
	})
	if err != nil {
		return err
	}

	a.log.Info("person added", "person", model.SafeString(p, a.verbose(cmd)))
	a.success("Added person %s", style.Name.Render(p.Name.String()))
	return nil
}

func (a *app) runPersonEdit(cmd *cobra.Command, args []string) error {
	pa, err := parser.ParsePersonArgs(joinArgs(args), a.rule)
	if err != nil {
		return err
	}
	if len(pa.Groups) > 0 {
		return errors.New("person edit does not take g/, use 'dxbook group assign'")
	}

	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		current, ok := b.Person(pa.Name)
		if !ok {
			return fmt.Errorf("%w: %s", dxerrors.ErrPersonNotFound, pa.Name)
		}
		return b.SetPerson(pa.Name, current.WithEmail(pa.Email))
	})
	if err != nil {
		return err
	}

	a.success("Updated person %s", style.Name.Render(pa.Name.String()))
	return nil
}

func (a *app) runPersonList(cmd *cobra.Command, _ []string) error {
	book, err := a.store("").LoadOrNew(cmd.Context())
	if err != nil {
		return err
	}

	persons := book.Persons()
	if len(persons) == 0 {
		a.warn("No persons. Run 'dxbook person add n/NAME e/EMAIL' to add one.")
		return nil
	}
	for i, p := range persons {
		groups := make([]string, len(p.Groups))
		for j, g := range p.Groups {
			groups[j] = g.String()
		}
		fmt.Fprintf(a.stdout, "%d. %s  %s  %s\n", i+1,
			style.Name.Render(p.Name.String()),
			style.Dim.Render(p.Email.String()),
			style.Tags(groups))
	}
	return nil
}

func (a *app) runPersonDelete(cmd *cobra.Command, args []string) error {
	name, err := parser.ParseName(joinArgs(args))
	if err != nil {
		return err
	}
	err = a.store("").Update(cmd.Context(), func(b *addressbook.AddressBook) error {
		return b.RemovePerson(name)
	})
	if err != nil {
		return err
	}
	a.success("Deleted person %s", style.Name.Render(name.String()))
	return nil
}
