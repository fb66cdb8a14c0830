// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Command auditor inspects and rewrites the custom-entries document(s) the
skipper daemon reads at startup.

Run with no server-contacting flags to bulk-adjust an existing document:

	auditor --path custom.json --offset 500 --duration 30000

--offset shifts every marker's start and end by the same amount;
--startoffset/--endoffset shift only one side. --duration logs a warning
for any marker whose length doesn't match the given number of
milliseconds. Adjusted starts/ends below zero are clamped to zero, and a
negative marker length is logged as likely invalid. --path may name a
single file or a directory, in which case every .json file under it is
processed.

--write_guids and --write_ratingkeys rewrite a document's rating-key-keyed
(or GUID-keyed) identifiers to the other form, contacting the configured
media server to build the lookup table.

--dump_guids and --dump_ratingkeys fetch the server's current markers and
chapters for a single item — or, for a show or season identifier, every
episode beneath it — filtered to the configured skip tags, and emit them
as a new custom-entries document keyed by GUID or rating key
respectively. The identifier may itself be given as either a rating key
or a GUID. If --path names a .json file the result is written there,
otherwise it is printed to stdout.

Exit status is 0 on success, 1 on an invalid path, a document that fails
to parse, or a media server connection failure.
*/
package main
