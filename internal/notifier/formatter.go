package notifier

import (
	"fmt"
	"strings"

	"github.com/robotswatch/robotswatch/internal/models"
)

// FormatSiteMessage builds the per-site email for a check outcome. It must
// only be called for FirstRun, Changed, and Error classifications.
func FormatSiteMessage(outcome models.CheckOutcome) EmailMessage {
	site := outcome.Site
	msg := EmailMessage{To: site.AdminEmail}

	switch outcome.Classification {
	case models.ClassificationFirstRun:
		msg.Subject = fmt.Sprintf("First %s robots.txt check complete", site.Name)
		var content string
		if outcome.NewContent != nil {
			content = *outcome.NewContent
		}
		msg.Body = fmt.Sprintf("The first successful check of the %s robots.txt file is complete. "+
			"Going forwards, you'll receive an email if the robots.txt file changes or if there's "+
			"an error during the check. Otherwise, you can assume that the file has not changed.\n\n"+
			"The extracted content is shown below:\n\n"+
			"-----START OF FILE-----\n\n%s\n\n-----END OF FILE-----\n",
			site.URL, content)

	case models.ClassificationChanged:
		msg.Subject = fmt.Sprintf("%s robots.txt change", site.Name)
		msg.Body = fmt.Sprintf("A change has been detected in the %s robots.txt file.\n\n"+
			"View the live robots.txt file: %s\n\n"+
			"The changes are shown below ('-' lines were removed, '+' lines were added):\n\n%s",
			site.URL, site.RobotsURL(), outcome.Diff)

	case models.ClassificationError:
		msg.Subject = fmt.Sprintf("%s robots.txt check error", site.Name)
		msg.Body = fmt.Sprintf("There was an error while checking the %s robots.txt file. "+
			"The check was not completed. The details are shown below.\n\n%s\n",
			site.URL, outcome.ErrorDetail)
	}

	return msg
}

// FormatAdminMessage builds the aggregate run report for the tool's operator.
func FormatAdminMessage(adminEmail string, summary *models.RunSummary, mainLogPath string) EmailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished at %s.\n\n", summary.RunID, summary.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Sites checked: %d of %d.\n%s\n", summary.Completed(), summary.TotalSites, summary.String())

	if len(summary.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, siteErr := range summary.Errors {
			fmt.Fprintf(&b, "- %s (%s): %s\n", siteErr.SiteName, siteErr.SiteURL, siteErr.Detail)
		}
	} else {
		b.WriteString("\nNo errors occurred during this run.\n")
	}

	msg := EmailMessage{
		To:      adminEmail,
		Subject: "robots.txt checks complete",
		Body:    b.String(),
	}
	if mainLogPath != "" {
		msg.Attachments = []string{mainLogPath}
	}
	return msg
}
