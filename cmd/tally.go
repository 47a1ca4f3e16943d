package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"bdl-cms/repositories"
	"bdl-cms/services"
)

func newTallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally <scrutin-id>",
		Short: "Print the current count of a scrutin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid scrutin id %q", args[0])
			}

			e := getEnv(cmd)
			db, closeDB, err := openDB(e)
			if err != nil {
				return err
			}
			defer closeDB()

			svc := services.NewScrutinService(repositories.NewScrutinRepository(db), e.log)
			res, err := svc.Results(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printResults(w io.Writer, res *services.ScrutinResults) {
	t := res.Tally
	status := "clos"
	if res.Open {
		status = "ouvert"
	}

	_, _ = fmt.Fprintf(w, "Scrutin n°%d : %s (%s)\n", res.Scrutin.ID, res.Scrutin.Title, status)
	_, _ = fmt.Fprintf(w, "  Pour        %d\n", t.Pour)
	_, _ = fmt.Fprintf(w, "  Contre      %d\n", t.Contre)
	_, _ = fmt.Fprintf(w, "  Abstention  %d\n", t.Abstention)
	_, _ = fmt.Fprintf(w, "  Exprimés    %d\n", t.Exprimes)
	_, _ = fmt.Fprintf(w, "  Majorité    %d\n", t.MajoriteAbsolue)
	if res.Badge != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", res.Badge)
	}
}
