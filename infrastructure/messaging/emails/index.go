package emails

var Mailer Sender = NewResendSender()
