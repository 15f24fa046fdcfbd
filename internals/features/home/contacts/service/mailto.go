package service

import (
	"net/url"
	"strings"

	"surveikita_web/internals/features/home/contacts/dto"
)

const MailSubject = "Permintaan Penawaran Survei - Survei Kita"

// MailtoURL menyusun link mailto berisi brief dari form kontak.
func MailtoURL(to string, r dto.CreateContactLeadRequest) string {
	org := r.Organization
	if org == "" {
		org = "-"
	}
	body := strings.Join([]string{
		"Nama: " + r.Name,
		"Instansi/Organisasi: " + org,
		"Kontak (Email/WA): " + r.PhoneOrEmail,
		"",
		"Kebutuhan:",
		r.Needs,
	}, "\n")

	return "mailto:" + to + "?subject=" + escapeComponent(MailSubject) + "&body=" + escapeComponent(body)
}

// spasi sebagai %20; sebagian mail client tidak mengubah "+" jadi spasi
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
