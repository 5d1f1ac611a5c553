// Package mailer sends the shopping-list email built from a user's carted
// recipes.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/integrations"
	"plateful.dev/Plateful/pkg/model"
)

type Mailer struct {
	conf   configs.Mail
	logger *zap.Logger
}

func New(conf configs.Mail, logger *zap.Logger) *Mailer {
	return &Mailer{conf: conf, logger: logger}
}

// SendShoppingList emails the user one section per carted recipe with its
// ingredient lines. A transport failure is returned to the caller, never
// retried here.
func (m *Mailer) SendShoppingList(ctx context.Context, user *model.User, recipes []integrations.RecipeInformation) error {
	msg := mail.NewMsg()
	if err := msg.From(m.conf.From); err != nil {
		return err
	}

	if err := msg.To(user.Email); err != nil {
		return err
	}

	msg.Subject("Your shopping list")
	msg.SetBodyString(mail.TypeTextPlain, ComposeShoppingList(user, recipes))

	options := []mail.Option{mail.WithPort(m.conf.Port)}
	if m.conf.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.conf.Username),
			mail.WithPassword(m.conf.Password))
	}

	client, err := mail.NewClient(m.conf.Host, options...)
	if err != nil {
		return err
	}

	m.logger.Info("sending shopping list",
		zap.String("username", user.Username), zap.Int("recipes", len(recipes)))

	return client.DialAndSendWithContext(ctx, msg)
}

// ComposeShoppingList renders the plain-text body.
func ComposeShoppingList(user *model.User, recipes []integrations.RecipeInformation) string {
	var body strings.Builder

	fmt.Fprintf(&body, "Hi %s,\n\nHere is the shopping list for your carted recipes.\n", user.Username)

	for _, recipe := range recipes {
		fmt.Fprintf(&body, "\n%s\n", recipe.Title)

		if len(recipe.Ingredients) == 0 {
			fmt.Fprintf(&body, "  (see %s for ingredients)\n", recipe.SourceURL)

			continue
		}

		for _, ingredient := range recipe.Ingredients {
			fmt.Fprintf(&body, "  - %s\n", ingredient)
		}
	}

	return body.String()
}
