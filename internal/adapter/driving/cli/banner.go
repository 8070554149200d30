package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/activitylens/activitylens/pkg/version"
)

// displayWelcomeBanner prints the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$              /$$     /$$           /$$   /$$                     /$$
        /$$__  $$            | $$    |__/          |__/  | $$                    | $$
       | $$  \ $$  /$$$$$$$ /$$$$$$   /$$ /$$    /$$ /$$ /$$$$$$   /$$   /$$     | $$        /$$$$$$  /$$$$$$$   /$$$$$$$
       | $$$$$$$$ /$$_____/|_  $$_/  | $$|  $$  /$$/| $$|_  $$_/  | $$  | $$     | $$       /$$__  $$| $$__  $$ /$$_____/
       | $$__  $$| $$        | $$    | $$ \  $$/$$/ | $$  | $$    | $$  | $$     | $$      | $$$$$$$$| $$  \ $$|  $$$$$$
       | $$  | $$| $$        | $$ /$$| $$  \  $$$/  | $$  | $$ /$$| $$  | $$     | $$      | $$_____/| $$  | $$ \____  $$
       | $$  | $$|  $$$$$$$  |  $$$$/| $$   \  $/   | $$  |  $$$$/|  $$$$$$$     | $$$$$$$$|  $$$$$$$| $$  | $$ /$$$$$$$/
       |__/  |__/ \_______/   \___/  |__/    \_/    |__/   \___/   \____  $$     |________/ \_______/|__/  |__/|_______/
                                                                   /$$  | $$
                                                                  |  $$$$$$/
                                                                   \______/
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("ActivityLens CLI (v%s)", formattedVersion)))
}
