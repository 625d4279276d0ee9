package presenter

import (
	"fmt"
	"io"
	"strings"

	"bbcli/internal/configutils"
	"bbcli/internal/domain/pullrequest"
)

func maskToken(token string) string {
	return strings.Repeat("*", len(token))
}

// AuthStatus prints where the credentials come from and who they log in
// as. The token is masked unless showToken is set.
func AuthStatus(w io.Writer, c *configutils.Config, showToken bool) {
	check := okStyle.Render("✓")
	if c.Path != "" {
		fmt.Fprintf(w, "%s Configuration found at %s\n", check, linkStyle.Render(c.Path))
	} else {
		fmt.Fprintf(w, "%s Configuration read from the environment\n", check)
	}

	fmt.Fprintf(
		w,
		"%s Will connect to %s as %s\n",
		check,
		titleStyle.Render(c.Bitbucket.Host),
		titleStyle.Render(c.Bitbucket.Username),
	)

	token := maskToken(c.Bitbucket.Token)
	if showToken {
		token = c.Bitbucket.Token
	}
	fmt.Fprintf(w, "%s Token: %s\n", check, token)
}

func Connection(w io.Writer, c *pullrequest.Connection) {
	fmt.Fprintf(
		w,
		"%s Connected to %s as %s, %d pull requests in the inbox\n",
		okStyle.Render("✓"),
		c.Host,
		titleStyle.Render(c.User),
		c.Inbox,
	)
}

func ConfigWritten(w io.Writer, path string) {
	fmt.Fprintf(w, "Configuration written at '%s', run 'bb auth test' to validate\n", path)
}
