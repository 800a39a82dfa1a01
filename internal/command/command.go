package command

import (
	commandHandler "assetflow/internal/command/handler"
	"assetflow/internal/database/client"
	"assetflow/internal/database/mongodb/repository"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewRoleHandler,
	client.NewMongoClient,
	repository.NewPersonRepository,
	wire.Bind(new(commandHandler.RoleUpdater), new(*repository.PersonRepository)),
)

type Command struct {
	roleCommandHandler *commandHandler.RoleHandler
}

// NewCommand .
func NewCommand(
	roleCommandHandler *commandHandler.RoleHandler,
) *Command {
	return &Command{
		roleCommandHandler: roleCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	var (
		email string
		role  string
	)
	grantRole := &cobra.Command{
		Use:   "grant-role",
		Short: "set a person's role (employee | hr_manager)",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.roleCommandHandler.GrantRole(cmd, email, role)
		},
	}
	grantRole.Flags().StringVar(&email, "email", "", "person email")
	grantRole.Flags().StringVar(&role, "role", "", "employee | hr_manager, empty to clear")
	rootCmd.AddCommand(grantRole)
}
