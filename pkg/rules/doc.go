/*
Package rules parses morphology rule files.

Each line has the form

	lemma: form1+TAGS1, form2+TAGS2, ...

The lemma is everything before the first ':'. Forms are separated by commas
and split on their first '+' into the surface word and an undivided tag
string. Forms without a '+' are ignored.
*/
package rules
