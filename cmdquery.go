/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Query modes: printer attributes, job listing, job cancel
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kofuk/ipp-print/ipp"
)

// cmdAttrs queries printer attributes and writes them to stdout
func cmdAttrs(opts *options) error {
	client, err := NewClient(Conf.PrinterURI)
	if err != nil {
		return err
	}

	defer client.Close()

	m := client.NewRequest(ipp.OpGetPrinterAttributes)
	m.AddOperation(ipp.MakeAttribute("requested-attributes",
		ipp.TagKeyword, ipp.String("all")))

	rsp, err := client.Do(m)
	if err != nil {
		return err
	}

	err = CheckStatus(rsp)
	if err != nil {
		return err
	}

	printAttrGroups(os.Stdout, rsp)
	return nil
}

// cmdJobs lists the jobs the printer has queued
func cmdJobs(opts *options) error {
	client, err := NewClient(Conf.PrinterURI)
	if err != nil {
		return err
	}

	defer client.Close()

	m := client.NewRequest(ipp.OpGetJobs)
	m.AddOperation(ipp.MakeAttribute("requested-attributes",
		ipp.TagKeyword,
		ipp.String("job-id"),
		ipp.String("job-name"),
		ipp.String("job-state"),
		ipp.String("job-state-reasons"),
		ipp.String("job-originating-user-name")))

	rsp, err := client.Do(m)
	if err != nil {
		return err
	}

	err = CheckStatus(rsp)
	if err != nil {
		return err
	}

	count := 0
	for gi := range rsp.Groups {
		if rsp.Groups[gi].Tag != ipp.TagJobGroup {
			continue
		}

		if count == 0 {
			fmt.Printf("%-6s %-24s %-12s %s\n",
				"JOB", "STATE", "USER", "NAME")
		}

		attrs := groupAttrs(&rsp.Groups[gi])

		state := jobStateName(attrs.intSingle("job-state"))
		reasons := attrs.strSet("job-state-reasons")
		if len(reasons) > 0 && reasons[0] != "none" {
			state += " (" + strings.Join(reasons, ",") + ")"
		}

		fmt.Printf("%-6d %-24s %-12s %s\n",
			attrs.intSingle("job-id"),
			state,
			attrs.strSingle("job-originating-user-name"),
			attrs.strSingle("job-name"))

		count++
	}

	if count == 0 {
		Log.Info("no jobs")
	}

	return nil
}

// cmdCancel cancels a job by its identifier
func cmdCancel(opts *options) error {
	client, err := NewClient(Conf.PrinterURI)
	if err != nil {
		return err
	}

	defer client.Close()

	m := client.NewRequest(ipp.OpCancelJob)
	m.AddOperation(ipp.MakeAttribute("job-id",
		ipp.TagInteger, ipp.Integer(opts.jobID)))

	if Conf.UserName != "" {
		m.AddOperation(ipp.MakeAttribute("requesting-user-name",
			ipp.TagName, ipp.String(Conf.UserName)))
	}

	rsp, err := client.Do(m)
	if err != nil {
		return err
	}

	err = CheckStatus(rsp)
	if err != nil {
		return err
	}

	Log.Info("job %d canceled", opts.jobID)
	return nil
}
